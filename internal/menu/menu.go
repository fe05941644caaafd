package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/moyu-x/desktop-cleaner/internal"
	"github.com/moyu-x/desktop-cleaner/pkg/history"
	"github.com/moyu-x/desktop-cleaner/pkg/logger"
	"github.com/moyu-x/desktop-cleaner/pkg/organizer"
	"github.com/moyu-x/desktop-cleaner/pkg/profile"
	"github.com/moyu-x/desktop-cleaner/pkg/report"
)

const aboutText = `
 This algorithm will clean up your computer desktop!
 When prompted, enter the path you want the program to organize and name of the files you wish to spare.
 Once the program is done running, some information such as the "Time Taken" to move the item(s) and the type of file(s) moved will be displayed through summary graphs.
 Chart pages are written as HTML so they can be opened in any browser.`

// Run 一次运行的日志，结束时写入结果
type Run interface {
	organizer.Journal
	Finish(result *organizer.RunResult) error
}

// Journal 运行日志存储
type Journal interface {
	Begin(mode internal.OperationMode, sourceDir string) (Run, error)
	Clear() error
}

type Options struct {
	In        io.Reader
	Out       io.Writer
	Fs        afero.Fs // 图表输出使用的文件系统
	Profiles  *profile.Store
	History   *history.Log
	Organizer *organizer.Organizer
	Journal   Journal // 可选

	ChartsPath      string
	DestinationName string
	// 没有文件可移动时结束整个循环，与旧版行为一致
	ExitOnEmptyMove bool
}

// Menu 交互式菜单循环
type Menu struct {
	opts    Options
	reader  *bufio.Reader
	out     io.Writer
	state   State
	profile profile.Profile

	warn *color.Color
	ok   *color.Color
}

func New(opts Options) *Menu {
	if opts.DestinationName == "" {
		opts.DestinationName = internal.DefaultDestinationName
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Organizer == nil {
		opts.Organizer = organizer.New(opts.Fs)
	}
	return &Menu{
		opts:   opts,
		reader: bufio.NewReader(opts.In),
		out:    opts.Out,
		state:  StateAwaitingConfig,
		warn:   color.New(color.FgRed),
		ok:     color.New(color.FgGreen),
	}
}

func (m *Menu) State() State {
	return m.state
}

func (m *Menu) Profile() profile.Profile {
	return m.profile
}

// Run 运行菜单直到用户选择退出或输入结束
func (m *Menu) Run() error {
	err := m.loop()
	if errors.Is(err, io.EOF) {
		logger.Get().Debug().Str("state", m.state.String()).Msg("输入结束，退出菜单")
		m.state = StateExited
		return nil
	}
	return err
}

func (m *Menu) loop() error {
	if err := m.start(); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Welcome to Desktop Cleaner!")

	for m.state != StateExited {
		if err := m.step(); err != nil {
			return err
		}
	}
	return nil
}

// start 加载已保存的配置，没有时提示用户输入
func (m *Menu) start() error {
	exists, err := m.opts.Profiles.Exists()
	if err != nil {
		return err
	}

	if exists {
		p, err := m.opts.Profiles.Load()
		if err != nil {
			return err
		}
		m.profile = p
		m.state = StateReady
		return nil
	}

	m.state = StateAwaitingConfig
	if err := m.editProfile(); err != nil {
		return err
	}
	m.state = StateReady
	return nil
}

func (m *Menu) step() error {
	fmt.Fprintln(m.out, "\nMenu:")
	fmt.Fprintln(m.out, "1. About")
	fmt.Fprintln(m.out, "2. Move files")
	fmt.Fprintln(m.out, "3. Delete files")
	fmt.Fprintln(m.out, "4. Change desktop path and excluded files")
	fmt.Fprintln(m.out, "5. Previous Runs")
	fmt.Fprintln(m.out, "6. Delete History")
	fmt.Fprintln(m.out, "7. Exit")

	choice, err := m.ask("Enter your choice: ")
	if err != nil {
		return err
	}

	switch strings.TrimSpace(choice) {
	case "1":
		return m.enter(StateAbout, m.about)
	case "2":
		return m.enter(StateMoving, m.move)
	case "3":
		return m.enter(StateDeleting, m.delete)
	case "4":
		return m.enter(StateEditing, m.editProfile)
	case "5":
		return m.enter(StateViewingHistory, m.viewHistory)
	case "6":
		return m.enter(StateClearingHistory, m.clearHistory)
	case "7":
		fmt.Fprintln(m.out, "Exiting program. See you next time!")
		m.state = StateExited
		return nil
	default:
		m.warn.Fprintln(m.out, "Please enter a valid option!")
		return nil
	}
}

// enter 进入处理状态，完成后回到 Ready
// 处理函数可以把状态改为 Exited
func (m *Menu) enter(state State, handler func() error) error {
	m.state = state
	err := handler()
	if m.state == state {
		m.state = StateReady
	}
	return err
}

func (m *Menu) about() error {
	fmt.Fprintln(m.out, aboutText)
	return nil
}

func (m *Menu) move() error {
	option, err := m.ask("Choose grouping option:\n1. Separate Folders\n2. Custom Grouping\nEnter your choice: ")
	if err != nil {
		return err
	}

	var mode internal.OperationMode
	switch strings.TrimSpace(option) {
	case "1":
		mode = internal.ModeFlat
	case "2":
		mode = internal.ModeGrouped
	default:
		m.warn.Fprintln(m.out, "Invalid option! Please choose 1 or 2.")
		return nil
	}

	result, err := m.process(mode)
	if err != nil {
		m.fail(err)
		return nil
	}

	if result.MovedCount == 0 {
		fmt.Fprintln(m.out, "No files to be moved!")
		logger.Get().Warn().
			Bool("exit_on_empty_move", m.opts.ExitOnEmptyMove).
			Msg("没有可移动的文件")
		if m.opts.ExitOnEmptyMove {
			m.state = StateExited
		}
		return nil
	}

	if err := report.WriteSummary(m.out, result); err != nil {
		return err
	}

	answer, askErr := m.ask("Do you want to see the summary of files displaced? (yes/no): ")
	if askErr == nil && isYes(answer) {
		m.showCharts(result)
	}

	// 只要有文件被移动就写入历史记录
	if err := m.opts.History.Append(result); err != nil {
		return err
	}
	return askErr
}

func (m *Menu) delete() error {
	answer, err := m.ask("Are you sure you want to delete files? (yes/no): ")
	if err != nil {
		return err
	}
	if !isYes(answer) {
		fmt.Fprintln(m.out, "Operation cancelled.")
		return nil
	}

	result, err := m.process(internal.ModeDelete)
	if err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintf(m.out, "%d files deleted.\n", result.MovedCount)
	return nil
}

// process 调用整理器，并在启用时记录运行日志
func (m *Menu) process(mode internal.OperationMode) (*organizer.RunResult, error) {
	source, err := internal.ExpandPath(m.profile.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("无效的源目录: %w", err)
	}
	p := m.profile
	p.SourcePath = source
	dest := p.DestinationRoot(m.opts.DestinationName)

	org := *m.opts.Organizer

	var run Run
	if m.opts.Journal != nil {
		// 运行日志是可选的，创建失败时照常整理，只是不做记录
		run, err = m.opts.Journal.Begin(mode, source)
		if err != nil {
			logger.Get().Warn().Err(err).Str("mode", string(mode)).Msg("创建运行记录失败，本次不记录")
			run = nil
		} else {
			org.Journal = run
		}
	}

	result, err := org.Process(source, dest, m.profile.Excluded(), mode)
	if run != nil && result != nil {
		if finishErr := run.Finish(result); finishErr != nil {
			logger.Get().Error().Err(finishErr).Msg("保存运行记录失败")
		}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// fail 报告整理失败，菜单继续运行
func (m *Menu) fail(err error) {
	logger.Get().Error().Err(err).Str("source", m.profile.SourcePath).Msg("整理失败")
	m.warn.Fprintf(m.out, "Error: %v\n", err)
}

func (m *Menu) showCharts(result *organizer.RunResult) {
	fmt.Fprintln(m.out)
	if err := report.WriteBars(m.out, result.Histogram, report.DefaultBarWidth); err != nil {
		logger.Get().Error().Err(err).Msg("输出柱状图失败")
	}

	if m.opts.ChartsPath == "" {
		return
	}
	if err := report.RenderCharts(m.opts.Fs, m.opts.ChartsPath, result.Histogram); err != nil {
		logger.Get().Error().Err(err).Msg("生成图表失败")
		m.warn.Fprintf(m.out, "Could not write charts: %v\n", err)
		return
	}
	m.ok.Fprintf(m.out, "Charts saved to %s\n", m.opts.ChartsPath)
}

// editProfile 重新输入路径和排除列表并整体覆盖保存
func (m *Menu) editProfile() error {
	source, err := m.ask("Enter the path of your desktop: ")
	if err != nil {
		return err
	}

	count, err := m.askCount("Enter the number of files you do not wish to move: ")
	if err != nil {
		return err
	}

	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		name, err := m.ask(fmt.Sprintf("Enter the name of file %d + its extension (ex: Formula Table.docx): ", i+1))
		if err != nil {
			return err
		}
		names = append(names, name)
	}

	saved, err := m.opts.Profiles.Save(profile.Profile{SourcePath: source, ExcludedNames: names})
	if err != nil {
		return err
	}
	m.profile = saved
	return nil
}

func (m *Menu) viewHistory() error {
	fmt.Fprintln(m.out, "\nPrevious Runs:")
	text, ok, err := m.opts.History.ReadAll()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(m.out, history.EmptyMessage)
		return nil
	}
	fmt.Fprint(m.out, text)
	return nil
}

func (m *Menu) clearHistory() error {
	answer, err := m.ask("Are you sure you want to delete history? (yes/no): ")
	if err != nil {
		return err
	}
	if !isYes(answer) {
		fmt.Fprintln(m.out, "Operation cancelled.")
		return nil
	}

	removed, err := m.opts.History.Clear()
	if err != nil {
		return err
	}
	if m.opts.Journal != nil {
		if err := m.opts.Journal.Clear(); err != nil {
			return err
		}
	}

	if removed {
		fmt.Fprintln(m.out, "History deleted.")
	} else {
		fmt.Fprintln(m.out, history.EmptyMessage)
	}
	return nil
}

// ask 输出提示并读取一行，去掉行尾换行符
func (m *Menu) ask(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	line, err := m.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// askCount 读取非负整数，输入无效时重新提示
func (m *Menu) askCount(prompt string) (int, error) {
	for {
		raw, err := m.ask(prompt)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(raw))
		if convErr == nil && n >= 0 {
			return n, nil
		}
		m.warn.Fprintln(m.out, "Please enter a whole number (0 or more).")
	}
}

func isYes(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == "yes"
}
