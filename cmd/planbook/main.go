// Package main runs the PlanbookAI terminal client: an interactive shell
// over the gateway services with a local fallback store for offline use.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/planbookai/planbook/internal/api"
	"github.com/planbookai/planbook/internal/config"
	"github.com/planbookai/planbook/internal/kvstore"
	"github.com/planbookai/planbook/internal/logger"
	"github.com/planbookai/planbook/internal/models"
	"github.com/planbookai/planbook/internal/rbac"
	"github.com/planbookai/planbook/internal/service"
	"github.com/planbookai/planbook/internal/session"
	"github.com/planbookai/planbook/internal/store"
)

var (
	version   string
	buildDate string
)

func main() {
	options := config.Parse()

	zapLogger, err := logger.New("info")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if version != "" {
		fmt.Printf("PlanbookAI Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
	}

	kv, err := kvstore.OpenSQLite(options.StoragePath)
	if err != nil {
		zapLogger.Fatal("cannot open local storage", zap.Error(err))
	}
	defer func() { _ = kv.Close() }()

	tokens := session.NewTokenStore(kv)
	client := api.New(options.APIBaseURL, tokens, zapLogger)
	sess := session.New(client, tokens, zapLogger)
	st := store.New(kv)
	services := service.New(client, st, zapLogger, service.Policy{
		MockFallback: options.UseMockData,
	})

	ctx := context.Background()
	sess.Init(ctx)
	if sess.IsAuthenticated() {
		if u := sess.User(); u != nil {
			fmt.Printf("Đã đăng nhập: %s (%s)\n", u.Username, u.Role)
		} else {
			fmt.Println("Phiên làm việc được giữ lại, chưa tải được thông tin người dùng.")
		}
	}

	repl(ctx, sess, services)
}

// repl runs the interactive shell loop.
func repl(ctx context.Context, sess *session.Store, services *service.Services) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("planbook> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			printHelp()
		case "login":
			portal := session.PortalTeacher
			if len(args) > 1 {
				portal = args[1]
			}
			username := prompt(scanner, "Tên đăng nhập: ")
			password := prompt(scanner, "Mật khẩu: ")
			res := sess.Login(ctx, username, password, portal)
			if !res.Success {
				fmt.Println("Lỗi:", res.Error)
				continue
			}
			fmt.Printf("Xin chào %s!\n", res.User.FullName)
		case "register":
			req := models.RegisterRequest{
				Email:    prompt(scanner, "Email: "),
				Username: prompt(scanner, "Tên đăng nhập: "),
				Password: prompt(scanner, "Mật khẩu: "),
				FullName: prompt(scanner, "Họ và tên: "),
				Role:     prompt(scanner, "Vai trò (teacher/staff/manager/admin): "),
			}
			if err := sess.Register(ctx, req); err != nil {
				fmt.Println("Lỗi:", err)
				continue
			}
			fmt.Println("Đăng ký thành công. Vui lòng đăng nhập.")
		case "logout":
			sess.Logout(ctx)
			fmt.Println("Đã đăng xuất.")
		case "whoami":
			if u := sess.User(); u != nil {
				printJSON(u)
			} else if sess.IsAuthenticated() {
				fmt.Println("Đang đăng nhập, chưa tải được thông tin người dùng.")
			} else {
				fmt.Println("Chưa đăng nhập.")
			}
		case "menu":
			role := ""
			if u := sess.User(); u != nil {
				role = u.Role
			}
			items := rbac.MenuItemsByRole(role)
			if len(items) == 0 {
				fmt.Println("(không có mục nào)")
			}
			for _, item := range items {
				fmt.Printf("%-22s %s\n", item.Name, item.Href)
			}
		case "questions":
			runQuestions(ctx, services, args[1:], rest(line, "questions"))
		case "exams":
			runExams(ctx, services, args[1:], rest(line, "exams"))
		case "lessons":
			runLessons(ctx, services, args[1:], rest(line, "lessons"))
		case "templates":
			result(services.Templates.GetAll(ctx))
		case "packages":
			if len(args) > 2 && args[1] == "subscribe" {
				result(services.Packages.Subscribe(ctx, args[2]))
				continue
			}
			result(services.Packages.GetAll(ctx))
		case "curriculum":
			result(services.Curriculum.GetAll(ctx))
		case "users":
			runUsers(ctx, services, args[1:], rest(line, "users"))
		case "ocr":
			runOCR(ctx, services, args[1:])
		case "exit":
			fmt.Println("Tạm biệt!")
			return
		default:
			fmt.Println("Lệnh không hợp lệ. Gõ 'help' để xem danh sách lệnh.")
		}
	}
}

func runQuestions(ctx context.Context, services *service.Services, args []string, rest string) {
	if len(args) == 0 || args[0] == "list" {
		f := store.Filters{}
		if len(args) > 1 {
			f.Search = args[1]
		}
		result(services.Questions.GetAll(ctx, f))
		return
	}
	switch args[0] {
	case "get":
		if requireArg(args, 2, "questions get <id>") {
			result(services.Questions.GetByID(ctx, args[1]))
		}
	case "create":
		var q models.Question
		if decodeArg(rest, "create", &q) {
			result(services.Questions.Create(ctx, q))
		}
	case "update":
		var patch map[string]any
		if requireArg(args, 2, "questions update <id> <json>") && decodeArg(rest, "update "+args[1], &patch) {
			result(services.Questions.Update(ctx, args[1], patch))
		}
	case "delete":
		if requireArg(args, 2, "questions delete <id>") {
			if err := services.Questions.Delete(ctx, args[1]); err != nil {
				fmt.Println("Lỗi:", err)
			} else {
				fmt.Println("Đã xóa câu hỏi.")
			}
		}
	case "approve":
		if requireArg(args, 2, "questions approve <id>") {
			result(services.Questions.Approve(ctx, args[1]))
		}
	case "stats":
		result(services.Questions.Stats(ctx))
	default:
		fmt.Println("Dùng: questions [list|get|create|update|delete|approve|stats]")
	}
}

func runExams(ctx context.Context, services *service.Services, args []string, rest string) {
	if len(args) == 0 || args[0] == "list" {
		result(services.Exams.GetAll(ctx, store.Filters{}))
		return
	}
	switch args[0] {
	case "get":
		if requireArg(args, 2, "exams get <id>") {
			result(services.Exams.GetByID(ctx, args[1]))
		}
	case "create":
		var e models.Exam
		if decodeArg(rest, "create", &e) {
			result(services.Exams.Create(ctx, e))
		}
	case "update":
		var patch map[string]any
		if requireArg(args, 2, "exams update <id> <json>") && decodeArg(rest, "update "+args[1], &patch) {
			result(services.Exams.Update(ctx, args[1], patch))
		}
	case "publish":
		if requireArg(args, 2, "exams publish <id>") {
			result(services.Exams.Publish(ctx, args[1]))
		}
	case "add-questions":
		if requireArg(args, 3, "exams add-questions <id> <question-id>...") {
			result(services.Exams.AddQuestions(ctx, args[1], args[2:]))
		}
	case "delete":
		if requireArg(args, 2, "exams delete <id>") {
			if err := services.Exams.Delete(ctx, args[1]); err != nil {
				fmt.Println("Lỗi:", err)
			} else {
				fmt.Println("Đã xóa đề thi.")
			}
		}
	default:
		fmt.Println("Dùng: exams [list|get|create|update|publish|add-questions|delete]")
	}
}

func runLessons(ctx context.Context, services *service.Services, args []string, rest string) {
	if len(args) == 0 || args[0] == "list" {
		result(services.Lessons.GetAll(ctx, store.Filters{}))
		return
	}
	switch args[0] {
	case "get":
		if requireArg(args, 2, "lessons get <id>") {
			result(services.Lessons.GetByID(ctx, args[1]))
		}
	case "create":
		var l models.Lesson
		if decodeArg(rest, "create", &l) {
			result(services.Lessons.Create(ctx, l))
		}
	case "update":
		var patch map[string]any
		if requireArg(args, 2, "lessons update <id> <json>") && decodeArg(rest, "update "+args[1], &patch) {
			result(services.Lessons.Update(ctx, args[1], patch))
		}
	case "duplicate":
		if requireArg(args, 2, "lessons duplicate <id>") {
			result(services.Lessons.Duplicate(ctx, args[1]))
		}
	case "generate":
		prompt := strings.TrimSpace(strings.TrimPrefix(rest, "generate"))
		result(services.Lessons.Generate(ctx, prompt))
	case "stats":
		result(services.Lessons.Stats(ctx))
	case "delete":
		if requireArg(args, 2, "lessons delete <id>") {
			if err := services.Lessons.Delete(ctx, args[1]); err != nil {
				fmt.Println("Lỗi:", err)
			} else {
				fmt.Println("Đã xóa giáo án.")
			}
		}
	default:
		fmt.Println("Dùng: lessons [list|get|create|update|duplicate|generate|stats|delete]")
	}
}

func runUsers(ctx context.Context, services *service.Services, args []string, rest string) {
	if len(args) == 0 || args[0] == "list" {
		f := store.Filters{}
		if len(args) > 1 {
			f.Search = args[1]
		}
		result(services.Users.GetAll(ctx, f))
		return
	}
	switch args[0] {
	case "get":
		if requireArg(args, 2, "users get <id>") {
			result(services.Users.GetByID(ctx, args[1]))
		}
	case "create":
		var data map[string]any
		if decodeArg(rest, "create", &data) {
			result(services.Users.Create(ctx, data))
		}
	case "update":
		var patch map[string]any
		if requireArg(args, 2, "users update <id> <json>") && decodeArg(rest, "update "+args[1], &patch) {
			result(services.Users.Update(ctx, args[1], patch))
		}
	case "delete":
		if requireArg(args, 2, "users delete <id>") {
			if err := services.Users.Delete(ctx, args[1]); err != nil {
				fmt.Println("Lỗi:", err)
			} else {
				fmt.Println("Đã xóa người dùng.")
			}
		}
	case "profile":
		result(services.Users.Profile(ctx))
	default:
		// A bare argument doubles as a search term.
		f := store.Filters{Search: args[0]}
		result(services.Users.GetAll(ctx, f))
	}
}

func runOCR(ctx context.Context, services *service.Services, args []string) {
	if len(args) < 2 {
		fmt.Println("Dùng: ocr upload <exam-id> <file>... | ocr status <task-id> | ocr results <exam-id>")
		return
	}
	switch args[0] {
	case "upload":
		if len(args) < 3 {
			fmt.Println("Dùng: ocr upload <exam-id> <file>...")
			return
		}
		var files []api.File
		for _, path := range args[2:] {
			f, err := os.Open(path)
			if err != nil {
				fmt.Println("Lỗi:", err)
				return
			}
			defer f.Close()
			files = append(files, api.File{Field: "files", Name: filepath.Base(path), Reader: f})
		}
		result(services.OCR.UploadForGrading(ctx, args[1], files))
	case "status":
		result(services.OCR.GradingStatus(ctx, args[1]))
	case "results":
		result(services.OCR.GradingResults(ctx, args[1]))
	default:
		fmt.Println("Dùng: ocr upload|status|results")
	}
}

// rest strips the leading command word from the line, keeping the raw
// remainder so JSON payloads survive with their whitespace intact.
func rest(line, cmd string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, cmd))
}

// decodeArg parses the JSON payload following subcmd on the line.
func decodeArg(rest, subcmd string, v any) bool {
	payload := strings.TrimSpace(strings.TrimPrefix(rest, subcmd))
	if payload == "" {
		fmt.Println("Thiếu dữ liệu JSON.")
		return false
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		fmt.Println("Lỗi: dữ liệu JSON không hợp lệ:", err)
		return false
	}
	return true
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func requireArg(args []string, n int, usage string) bool {
	if len(args) < n {
		fmt.Println("Dùng:", usage)
		return false
	}
	return true
}

// result prints a value or its error, the uniform tail of every command.
func result[T any](v T, err error) {
	if err != nil {
		fmt.Println("Lỗi:", err)
		return
	}
	printJSON(v)
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func printHelp() {
	fmt.Println(`Các lệnh:
  login [admin|teacher]            đăng nhập vào cổng
  register                         đăng ký tài khoản mới
  logout                           đăng xuất
  whoami                           thông tin người dùng hiện tại
  menu                             menu điều hướng theo vai trò
  questions [list|get|create|update|delete|approve|stats]
  exams     [list|get|create|update|publish|add-questions|delete]
  lessons   [list|get|create|update|duplicate|generate|stats|delete]
  templates                        danh sách template
  packages  [subscribe <id>]       gói dịch vụ
  curriculum                       khung chương trình
  users     [list|get|create|update|delete|profile]
  ocr upload|status|results        chấm điểm OCR
  exit`)
}
