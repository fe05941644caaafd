package organizer

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/h2non/filetype"
)

// probe 在移动或删除之前读取一次文件
// 同时计算 xxHash 并根据文件头判断 MIME 类型
func (o *Organizer) probe(entry *Entry) error {
	file, err := o.Fs.Open(entry.Source)
	if err != nil {
		return fmt.Errorf("打开文件失败: %w", err)
	}
	defer file.Close()

	var head bytes.Buffer
	h := xxhash.New()
	tee := io.TeeReader(file, h)

	if _, err := io.CopyN(&head, tee, FileHeaderSize); err != nil && err != io.EOF {
		return fmt.Errorf("读取文件头部失败: %w", err)
	}
	if _, err := io.Copy(h, file); err != nil {
		return fmt.Errorf("计算哈希失败: %w", err)
	}

	entry.Checksum = strconv.FormatUint(h.Sum64(), 16)
	entry.MIME = detectMIME(head.Bytes())
	return nil
}

// detectMIME 根据文件头返回 MIME 类型
func detectMIME(head []byte) string {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return UnknownMIME
	}
	return kind.MIME.Value
}
