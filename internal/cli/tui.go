package cli

import (
	"encoding/json"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/helmsley-labs/graphcal/internal/cache"
	"github.com/helmsley-labs/graphcal/internal/tui"
	"github.com/helmsley-labs/graphcal/internal/view"
)

var tuiUser string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the synced calendar in the terminal",
	Long: `Open the terminal calendar over the locally synced snapshot. Run the web
app and sync first; the terminal view is offline and reads only the local
database.`,
	Args: cobra.NoArgs,
	RunE: runTui,
}

func runTui(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, err := cache.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	userID, err := resolveUser(store, tuiUser)
	if err != nil {
		return err
	}

	load := func() ([]view.Event, time.Time, error) {
		return loadEvents(store, userID)
	}

	events, syncedAt, err := load()
	if err != nil {
		return err
	}

	eventStore := view.NewStore()
	eventStore.Replace(events)
	engine := view.NewEngine(loc, nil)

	model := tui.NewModel(engine, eventStore, syncedAt, load)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// resolveUser picks the snapshot owner. Without --user the sole synced user
// is used; multiple users require the flag.
func resolveUser(store *cache.Store, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	users, err := store.Users()
	if err != nil {
		return "", err
	}
	switch len(users) {
	case 0:
		return "", fmt.Errorf("no synced calendar found; run 'graphcal serve' and sync first")
	case 1:
		return users[0], nil
	default:
		return "", fmt.Errorf("multiple synced users found; pick one with --user")
	}
}

// loadEvents reads and decodes a user's snapshot.
func loadEvents(store *cache.Store, userID string) ([]view.Event, time.Time, error) {
	snapshot, syncedAt, ok, err := store.LoadSnapshot(userID)
	if err != nil {
		return nil, time.Time{}, err
	}
	if !ok {
		return nil, time.Time{}, fmt.Errorf("no snapshot for user %s; sync from the web app first", userID)
	}

	var events []view.Event
	if err := json.Unmarshal(snapshot, &events); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return events, syncedAt, nil
}

func init() {
	tuiCmd.Flags().StringVar(&tuiUser, "user", "", "user ID of the snapshot to open")
	rootCmd.AddCommand(tuiCmd)
}
