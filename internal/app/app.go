package app

import (
	"context"
	"fmt"
	"io"

	"taskcli/internal/config"
	"taskcli/internal/console"
	"taskcli/internal/handlers"
	"taskcli/internal/logger"
	"taskcli/internal/middleware"
	"taskcli/internal/repository/task/inmemory"
	"taskcli/internal/repository/task/jsonfile"
	"taskcli/internal/repository/task/sqlite"
	"taskcli/internal/service"

	"go.uber.org/zap"
)

const promptCommand = "What would you like to do?: "

type App struct {
	config     *config.Config
	in         io.Reader
	out        io.Writer
	console    *console.Console
	router     *handlers.Router
	repository service.TaskRepository // интерфейс!
	service    *service.TaskService
	shutdowns  []func() // выполняются в Close в обратном порядке
}

func New(cfg *config.Config, in io.Reader, out io.Writer) *App {
	return &App{
		config:    cfg,
		in:        in,
		out:       out,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development, a.config.Logging.Level); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	repo, err := newRepository(a.config.Store)
	if err != nil {
		return err
	}
	a.repository = repo

	a.service = service.NewTaskService(a.repository)
	if err := a.service.Init(ctx); err != nil {
		return err
	}

	a.console = console.New(a.in, a.out)
	handler := handlers.NewTaskHandler(a.service, a.console, a.out)

	a.router = handlers.NewRouter()
	a.router.Use(middleware.RequestID, middleware.Logging)
	handlers.RegisterRoutes(a.router, handler)

	logger.Info("App: Инициализация завершена",
		zap.String("driver", a.config.Store.Driver),
		zap.String("path", a.config.Store.Path),
		zap.Bool("lock", a.config.Store.Lock))
	return nil
}

func newRepository(cfg config.StoreConfig) (service.TaskRepository, error) {
	switch cfg.Driver {
	case config.DriverJSON:
		opts := []jsonfile.Option{jsonfile.WithLockTimeout(cfg.LockTimeout)}
		if !cfg.Lock {
			opts = append(opts, jsonfile.WithoutLock())
		}
		return jsonfile.New(cfg.Path, opts...), nil
	case config.DriverSQLite:
		opts := []sqlite.Option{sqlite.WithLockTimeout(cfg.LockTimeout)}
		if !cfg.Lock {
			opts = append(opts, sqlite.WithoutLock())
		}
		return sqlite.New(cfg.Path, opts...), nil
	case config.DriverMemory:
		return inmemory.NewTaskStorage(), nil
	default:
		return nil, fmt.Errorf("неизвестный драйвер хранилища %q", cfg.Driver)
	}
}

// Run выполняет одну команду. Без аргументов команда спрашивается у пользователя.
func (a *App) Run(ctx context.Context, args []string) error {
	var command string
	if len(args) > 0 {
		command = args[0]
	} else {
		a.console.Welcome()
		answer, err := a.console.Ask(ctx, promptCommand)
		if err != nil {
			return fmt.Errorf("чтение команды: %w", err)
		}
		command = answer
	}

	return a.router.Dispatch(ctx, command)
}

func (a *App) Commands() []string {
	return a.router.Commands()
}

func (a *App) Close() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
