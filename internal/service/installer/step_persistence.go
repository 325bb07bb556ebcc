package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/anjali/internal/config"
	"github.com/sandevgo/anjali/internal/providers/embed"
	"github.com/sandevgo/anjali/internal/storage/sqlite"
	"github.com/sandevgo/anjali/internal/storage/vector"
)

// SaveEnvStep writes the collected settings to <runtime>/.env.
type SaveEnvStep struct {
	err   error
	saved bool
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if err := WriteEnv(config.GetRuntimePath(), state); err != nil {
		s.err = err
		return s, nil
	}
	s.saved = true
	return nil, nil
}

// WriteEnv refuses to overwrite an existing .env.
func WriteEnv(dir string, state *InstallState) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	content, err := state.Env()
	if err != nil {
		return err
	}
	return os.WriteFile(envPath, []byte(content), 0o600)
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

// InitializeStoresStep creates the memory database and the vector index so
// the first start does not pay for migrations.
type InitializeStoresStep struct {
	err  error
	done bool
}

func NewInitializeStoresStep() Step {
	return &InitializeStoresStep{}
}

func (s *InitializeStoresStep) Init() tea.Cmd {
	return nil
}

func (s *InitializeStoresStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.done {
		return nil, nil
	}
	cfg, err := config.ParseAppConfig()
	if err != nil {
		s.err = err
		return s, nil
	}
	if err := InitializeStores(context.Background(), cfg.GetDatabasePath(), cfg.GetVectorDir()); err != nil {
		s.err = err
		return s, nil
	}
	s.done = true
	return nil, nil
}

func InitializeStores(ctx context.Context, dbPath, vectorDir string) error {
	db, err := sqlite.NewDB(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	index, err := vector.NewStore(ctx, vectorDir, embed.NewHashEmbedder(0))
	if err != nil {
		return fmt.Errorf("failed to initialize vector index: %w", err)
	}
	return index.Close()
}

func (s *InitializeStoresStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.done {
		return "Memory stores initialized successfully!\n"
	}
	return "Initializing memory stores...\n"
}
