// Command tk is a CLI client for task-keeper. All state lives in the user's
// config directory; the remote API is used when reachable and local storage
// carries the rest.
package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/and161185/task-keeper/internal/blobstore"
	"github.com/and161185/task-keeper/internal/derive"
	"github.com/and161185/task-keeper/internal/model"
	"github.com/and161185/task-keeper/internal/remote"
	"github.com/and161185/task-keeper/internal/service"
	"github.com/and161185/task-keeper/internal/storage"
)

// ---- config/token store ----

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	UserID      string    `json:"user_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "task-keeper")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "task-keeper")
}

func tokenPath() string { return filepath.Join(cfgDir(), "token.json") }

func saveToken(tf tokenFile) error {
	_ = os.MkdirAll(cfgDir(), 0o700)
	f, err := os.Create(tokenPath())
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tf)
}

func loadToken() (tokenFile, error) {
	var tf tokenFile
	b, err := os.ReadFile(tokenPath())
	if err != nil {
		return tf, errors.New("not logged in (run: tk login)")
	}
	if err := json.Unmarshal(b, &tf); err != nil {
		return tf, err
	}
	if tf.AccessToken == "" || time.Now().After(tf.ExpiresAt) {
		return tf, errors.New("session expired (run: tk login)")
	}
	return tf, nil
}

// localKey loads or creates the per-install HS256 key used to sign tokens
// for offline sessions.
func localKey() ([]byte, error) {
	p := filepath.Join(cfgDir(), "session.key")
	if b, err := os.ReadFile(p); err == nil && len(b) > 0 {
		return b, nil
	}
	k := make([]byte, 32)
	if _, err := rand.Read(k); err != nil {
		return nil, err
	}
	_ = os.MkdirAll(cfgDir(), 0o700)
	if err := os.WriteFile(p, k, 0o600); err != nil {
		return nil, err
	}
	return k, nil
}

// ---- wiring ----

type app struct {
	auth   *service.AuthService
	todos  *service.TodoService
	store  *storage.TodoStore
	users  *storage.UserStore
	backup *storage.BackupStore
}

func newApp(apiURL string) (*app, error) {
	blob := blobstore.NewFile(filepath.Join(cfgDir(), "data.json"))
	log := zap.NewNop()

	users := storage.NewUserStore(blob, log)
	creds := storage.NewCredentialStore(blob, log)
	todoStore := storage.NewTodoStore(blob, log)
	backup := storage.NewBackupStore(blob, log)

	client := remote.New(apiURL, 10*time.Second, func() string {
		tf, err := loadToken()
		if err != nil {
			return ""
		}
		return tf.AccessToken
	})

	key, err := localKey()
	if err != nil {
		return nil, err
	}
	return &app{
		auth:   service.NewAuthService(client, users, creds, key, 24*time.Hour, log),
		todos:  service.NewTodoService(client, todoStore, log),
		store:  todoStore,
		users:  users,
		backup: backup,
	}, nil
}

// ---- helpers ----

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(err error) {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(os.Stderr, "api error: status=%d msg=%s\n", apiErr.Status, apiErr.Message)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func currentUser() string {
	tf, err := loadToken()
	if err != nil {
		fail(err)
	}
	return tf.UserID
}

func parseDue(s string) *time.Time {
	if s == "" {
		return nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		fail(fmt.Errorf("bad due date %q (want YYYY-MM-DD)", s))
	}
	return &d
}

// tokenExpiry reads the exp claim so the cached session matches the token's
// actual lifetime. A token without a readable exp falls back to 24h.
func tokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(24 * time.Hour)
}

func saveAuth(resp model.AuthResponse) {
	if err := saveToken(tokenFile{
		AccessToken: resp.Token,
		UserID:      resp.User.ID,
		ExpiresAt:   tokenExpiry(resp.Token),
	}); err != nil {
		fail(err)
	}
	fmt.Println("ok")
}

func usage() {
	fmt.Fprintf(os.Stderr, `tk CLI
Usage:
  tk [-api URL] <cmd> [args]

Commands:
  version
  register  -u <username> -p <password> -email <email> -first <name> -last <name>
  login     -u <username> -p <password>              (saves token)
  logout
  add       -title <t> [-desc -priority -category -due YYYY-MM-DD -tags a,b]
  list      [-status -priority -category -search -due -sort <field> -order asc|desc]
  done      -id <todo>
  edit      -id <todo> [-title -desc -status -priority -category -due]
  rm        -id <todo>[,<todo>...]
  stats
  streak
  export                                            (prints backup JSON)
  import    -file <path>
  backup                                            (saves snapshot)
  restore                                           (restores snapshot)
`)
	os.Exit(2)
}

var (
	version   = "dev"
	buildDate = "unknown"
)

// main dispatches subcommands.
func main() {
	apiURL := flag.String("api", "http://localhost:8080", "task-keeper API base URL")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	if cmd == "version" {
		fmt.Printf("tk %s (%s)\n", version, buildDate)
		return
	}

	a, err := newApp(*apiURL)
	if err != nil {
		fail(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd {

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		u := fs.String("u", "", "username")
		p := fs.String("p", "", "password")
		email := fs.String("email", "", "email")
		first := fs.String("first", "", "first name")
		last := fs.String("last", "", "last name")
		_ = fs.Parse(args)
		resp, err := a.auth.Signup(ctx, model.Signup{
			Username: *u, Email: *email, Password: *p,
			FirstName: *first, LastName: *last,
		})
		if err != nil {
			fail(err)
		}
		saveAuth(resp)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		u := fs.String("u", "", "username")
		p := fs.String("p", "", "password")
		_ = fs.Parse(args)
		resp, err := a.auth.Login(ctx, model.Credentials{Username: *u, Password: *p})
		if err != nil {
			fail(err)
		}
		saveAuth(resp)

	case "logout":
		if err := os.Remove(tokenPath()); err != nil && !os.IsNotExist(err) {
			fail(err)
		}
		fmt.Println("ok")

	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		title := fs.String("title", "", "title")
		desc := fs.String("desc", "", "description")
		prio := fs.String("priority", "medium", "low|medium|high|urgent")
		cat := fs.String("category", "Personal", "category")
		due := fs.String("due", "", "due date YYYY-MM-DD")
		tags := fs.String("tags", "", "comma-separated tags")
		_ = fs.Parse(args)

		in := service.NewTodo{
			Title:       *title,
			Description: *desc,
			Priority:    model.Priority(*prio),
			Category:    *cat,
			DueDate:     parseDue(*due),
		}
		if *tags != "" {
			in.Tags = strings.Split(*tags, ",")
		}
		t, err := a.todos.Create(ctx, currentUser(), in)
		if err != nil {
			fail(err)
		}
		fmt.Println(t.ID)

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		status := fs.String("status", "all", "status filter")
		prio := fs.String("priority", "all", "priority filter")
		cat := fs.String("category", "all", "category filter")
		search := fs.String("search", "", "search term")
		due := fs.String("due", "all", "all|today|week|month|overdue")
		sortBy := fs.String("sort", "createdAt", "title|priority|dueDate|createdAt|status")
		order := fs.String("order", "desc", "asc|desc")
		_ = fs.Parse(args)

		now := time.Now()
		todos := derive.Filter(a.todos.List(currentUser()), derive.Filters{
			Status:   derive.StatusFilter(*status),
			Priority: derive.PriorityFilter(*prio),
			Category: derive.CategoryFilter(*cat),
			Search:   *search,
			Due:      derive.DueFilter(*due),
		}, now)
		todos = derive.Sort(todos, derive.SortSpec{
			Field: derive.SortField(*sortBy),
			Order: derive.SortOrder(*order),
		})

		type row struct {
			ID       string `json:"id"`
			Title    string `json:"title"`
			Status   string `json:"status"`
			Priority string `json:"priority"`
			Due      string `json:"due,omitempty"`
		}
		rows := make([]row, 0, len(todos))
		for _, t := range todos {
			r := row{ID: t.ID, Title: t.Title, Status: string(t.Status), Priority: string(t.Priority)}
			if t.DueDate != nil {
				r.Due = t.DueDate.Format("2006-01-02")
				if derive.IsOverdue(*t.DueDate, now) {
					r.Due += " (overdue)"
				}
			}
			rows = append(rows, r)
		}
		printJSON(rows)

	case "done":
		fs := flag.NewFlagSet("done", flag.ExitOnError)
		id := fs.String("id", "", "todo id")
		_ = fs.Parse(args)
		if *id == "" {
			fail(errors.New("need -id"))
		}
		completed := model.StatusCompleted
		if err := a.todos.Update(ctx, currentUser(), *id, storage.TodoPatch{Status: &completed}); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "edit":
		fs := flag.NewFlagSet("edit", flag.ExitOnError)
		id := fs.String("id", "", "todo id")
		title := fs.String("title", "", "new title")
		desc := fs.String("desc", "", "new description")
		status := fs.String("status", "", "new status")
		prio := fs.String("priority", "", "new priority")
		cat := fs.String("category", "", "new category")
		due := fs.String("due", "", "new due date YYYY-MM-DD (or 'none')")
		_ = fs.Parse(args)
		if *id == "" {
			fail(errors.New("need -id"))
		}

		var patch storage.TodoPatch
		if *title != "" {
			patch.Title = title
		}
		if *desc != "" {
			patch.Description = desc
		}
		if *status != "" {
			st := model.Status(*status)
			if !st.Valid() {
				fail(fmt.Errorf("unknown status %q", *status))
			}
			patch.Status = &st
		}
		if *prio != "" {
			pr := model.Priority(*prio)
			if !pr.Valid() {
				fail(fmt.Errorf("unknown priority %q", *prio))
			}
			patch.Priority = &pr
		}
		if *cat != "" {
			patch.Category = cat
		}
		if *due == "none" {
			patch.ClearDueDate = true
		} else if *due != "" {
			patch.DueDate = parseDue(*due)
		}
		if err := a.todos.Update(ctx, currentUser(), *id, patch); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "rm":
		fs := flag.NewFlagSet("rm", flag.ExitOnError)
		id := fs.String("id", "", "todo id(s), comma-separated")
		_ = fs.Parse(args)
		if *id == "" {
			fail(errors.New("need -id"))
		}
		ids := strings.Split(*id, ",")
		if len(ids) == 1 {
			if err := a.todos.Delete(ctx, currentUser(), ids[0]); err != nil {
				fail(err)
			}
		} else {
			a.todos.DeleteMany(currentUser(), ids)
		}
		fmt.Println("ok")

	case "stats":
		printJSON(derive.Calculate(a.todos.List(currentUser())))

	case "streak":
		printJSON(derive.Streak(a.todos.List(currentUser()), time.Now()))

	case "export":
		fmt.Println(a.backup.Export())

	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		file := fs.String("file", "", "backup file path")
		_ = fs.Parse(args)
		if *file == "" {
			fail(errors.New("need -file"))
		}
		b, err := os.ReadFile(*file)
		if err != nil {
			fail(err)
		}
		if !a.backup.Import(string(b)) {
			fail(errors.New("invalid backup payload"))
		}
		fmt.Println("ok")

	case "backup":
		a.backup.Save()
		fmt.Println("ok")

	case "restore":
		if !a.backup.Restore() {
			fail(errors.New("no backup found"))
		}
		fmt.Println("ok")

	default:
		usage()
	}
}
