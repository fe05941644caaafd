package organizer

// 分组模式的目录名称
const (
	CategoryPictures      = "Pictures"
	CategoryDocuments     = "Documents"
	CategorySpreadsheets  = "Spreadsheets"
	CategoryMiscellaneous = "Miscellaneous"
)

// 文件探测相关常量
const (
	// FileHeaderSize 文件类型检测所需的文件头部大小（字节）
	FileHeaderSize = 261

	// UnknownMIME 无法识别的 MIME 类型
	UnknownMIME = "unknown"
)

// categories 分组模式下扩展名到目录的映射表，区分大小写
var categories = map[string]string{
	"png":  CategoryPictures,
	"jpg":  CategoryPictures,
	"jpeg": CategoryPictures,
	"gif":  CategoryPictures,
	"heif": CategoryPictures,
	"doc":  CategoryDocuments,
	"docx": CategoryDocuments,
	"pdf":  CategoryDocuments,
	"xlsx": CategorySpreadsheets,
	"xls":  CategorySpreadsheets,
}

// Category 返回扩展名在分组模式下的目录名
func Category(ext string) string {
	if category, ok := categories[ext]; ok {
		return category
	}
	return CategoryMiscellaneous
}

// Categories 返回映射表的副本
func Categories() map[string]string {
	out := make(map[string]string, len(categories))
	for ext, category := range categories {
		out[ext] = category
	}
	return out
}
