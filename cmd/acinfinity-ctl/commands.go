package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tentlab/acinfinity/internal/acapi"
	"github.com/tentlab/acinfinity/internal/config"
	"github.com/tentlab/acinfinity/internal/service"
	"github.com/tentlab/acinfinity/internal/store"
	"github.com/tentlab/acinfinity/internal/ui"
)

// Command flags
var (
	accountEmail  string
	watchInterval int
	portLabelType string
	portLabelIcon string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&accountEmail, "email", "", "Account email (defaults to the one saved by 'login')")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setPortCmd)
	rootCmd.AddCommand(setControllerCmd)
	rootCmd.AddCommand(labelCmd)
	rootCmd.AddCommand(watchCmd)
}

// resolveEmail returns the account email from the flag or the saved registry.
func resolveEmail() (string, error) {
	if accountEmail != "" {
		return accountEmail, nil
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if email := registry.AccountEmail(); email != "" {
		return email, nil
	}

	return "", fmt.Errorf("no account email known - pass --email or run 'acinfinity-ctl login' first")
}

// promptPassword reads the account password without echo. The password is
// never persisted.
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

// connect builds a logged-in service for the account.
func connect() (*service.Service, error) {
	email, err := resolveEmail()
	if err != nil {
		return nil, err
	}

	password, err := promptPassword()
	if err != nil {
		return nil, err
	}

	client := acapi.NewClient(email, password)
	return service.New(client), nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify account credentials and save the account email",
	Long: `Log in to the AC Infinity cloud with your app account.

On success the account email is saved to the config file for later commands.
The password is never stored; it is prompted each time it is needed.`,
	Example: `  acinfinity-ctl login --email grower@example.com`,
	RunE:    runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	if accountEmail == "" {
		return fmt.Errorf("--email is required for login")
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	client := acapi.NewClient(accountEmail, password)
	if err := client.Login(); err != nil {
		if acapi.IsAuthError(err) {
			return fmt.Errorf("login rejected - check your email and password")
		}
		return fmt.Errorf("could not reach the AC Infinity server: %w", err)
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	registry.SetAccountEmail(accountEmail)
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("Login OK. Account email saved.")
	return nil
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the controllers on the account",
	RunE:  runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	svc, err := connect()
	if err != nil {
		return err
	}

	if err := svc.Refresh(); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	controllers := svc.Store().Controllers()
	if len(controllers) == 0 {
		fmt.Println("No controllers on this account.")
		return nil
	}

	registry, _ := config.LoadRegistry()
	for _, controller := range controllers {
		fmt.Println(controller)
		if registry != nil {
			if meta := registry.GetController(controller.DeviceID); meta != nil && meta.Nickname != "" {
				fmt.Printf("  nickname: %s\n", meta.Nickname)
			}
			registry.UpdateControllerLastSeen(controller.DeviceID)
		}
	}
	if registry != nil {
		_ = registry.Save()
	}

	return nil
}

var showCmd = &cobra.Command{
	Use:   "show <controller-id>",
	Short: "Show ports, telemetry and sensors for one controller",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	deviceID := args[0]

	svc, err := connect()
	if err != nil {
		return err
	}
	if err := svc.Refresh(); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	var target *store.Controller
	for _, controller := range svc.Store().Controllers() {
		if controller.DeviceID == deviceID {
			target = controller
			break
		}
	}
	if target == nil {
		return fmt.Errorf("controller %s not found on this account", deviceID)
	}

	fmt.Println(target)
	for _, sensor := range target.Sensors {
		scope := "controller"
		if sensor.AccessPort != 0 {
			scope = fmt.Sprintf("port %d", sensor.AccessPort)
		}
		fmt.Printf("  %-28s %.2f (%s)\n", sensor.TypeName(), sensor.Value(), scope)
	}

	snapshot := svc.Store()
	for _, port := range target.Ports {
		online := snapshot.PortProperty(deviceID, port.Index, acapi.PortPropertyKeyOnline, 0)
		level := snapshot.PortProperty(deviceID, port.Index, acapi.PortPropertyKeySpeak, 0)
		mode := snapshot.PortProperty(deviceID, port.Index, acapi.PortPropertyKeyCurMode, 0)
		fmt.Printf("  port %d %-20s online=%v level=%v mode=%v\n",
			port.Index, port.Name, online, level, mode)
	}

	return nil
}

var setPortCmd = &cobra.Command{
	Use:   "set-port <controller-id> <port> <key>=<value> [<key>=<value>...]",
	Short: "Change port mode settings",
	Long: `Change one or more mode settings fields on a port.

The current settings record is fetched fresh, the changes are merged into it,
and the full record is written back. A refresh runs afterwards so the local
snapshot reflects the change.`,
	Example: `  # Set the on-speed of port 1 to 5
  acinfinity-ctl set-port 54929097239553773072 1 onSpead=5

  # Switch port 2 to auto mode with a high-temp trigger
  acinfinity-ctl set-port 54929097239553773072 2 atType=2 activeHt=1`,
	Args: cobra.MinimumNArgs(3),
	RunE: runSetPort,
}

func runSetPort(cmd *cobra.Command, args []string) error {
	deviceID := args[0]
	port, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid port index %q", args[1])
	}

	changes, err := parseChanges(args[2:])
	if err != nil {
		return err
	}

	svc, err := connect()
	if err != nil {
		return err
	}
	if err := svc.Refresh(); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	if err := svc.UpdatePortSettings(deviceID, port, changes); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	// The cache never sees writes directly; refresh to observe the change
	if err := svc.Refresh(); err != nil {
		return fmt.Errorf("update applied but refresh failed: %w", err)
	}

	fmt.Printf("Updated port %d on %s.\n", port, deviceID)
	return nil
}

var setControllerCmd = &cobra.Command{
	Use:   "set-controller <controller-id> <key>=<value> [<key>=<value>...]",
	Short: "Change controller-level advanced settings",
	Example: `  # Calibrate temperature by -2 degrees
  acinfinity-ctl set-controller 54929097239553773072 devCt=-2`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSetController,
}

func runSetController(cmd *cobra.Command, args []string) error {
	deviceID := args[0]

	changes, err := parseChanges(args[1:])
	if err != nil {
		return err
	}

	svc, err := connect()
	if err != nil {
		return err
	}

	// The controller's display name must be in the snapshot before an
	// advanced-settings write
	if err := svc.Refresh(); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	if err := svc.UpdateControllerSettings(deviceID, changes); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	if err := svc.Refresh(); err != nil {
		return fmt.Errorf("update applied but refresh failed: %w", err)
	}

	fmt.Printf("Updated controller %s.\n", deviceID)
	return nil
}

var labelCmd = &cobra.Command{
	Use:   "label <controller-id> <port> <label>",
	Short: "Set a local label for a port",
	Long: `Set a user-defined label for a port in the local config file.

Labels are client-side only and are never written to the cloud account.`,
	Example: `  acinfinity-ctl label 54929097239553773072 2 "Exhaust Fan" --type fan`,
	Args:    cobra.ExactArgs(3),
	RunE:    runLabel,
}

func init() {
	labelCmd.Flags().StringVar(&portLabelType, "type", "other", "Connected gear type (fan, light, pump, ...)")
	labelCmd.Flags().StringVar(&portLabelIcon, "icon", "", "Optional icon for display")
}

func runLabel(cmd *cobra.Command, args []string) error {
	deviceID := args[0]
	port, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid port index %q", args[1])
	}

	if _, ok := config.PortTypeDefinitions[portLabelType]; !ok {
		return fmt.Errorf("unknown gear type %q", portLabelType)
	}
	icon := portLabelIcon
	if icon == "" {
		icon = config.PortTypeIcons[portLabelType]
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	registry.SetPortLabel(deviceID, port, args[2], portLabelType, icon)
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Labelled port %d on %s as %q.\n", port, deviceID, args[2])
	return nil
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch live telemetry in a terminal dashboard",
	Long: `Open a live dashboard showing every controller's sensors and ports.

The snapshot refreshes automatically on a fixed interval; press 'r' to
refresh immediately and 'q' to quit.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchInterval, "interval", 0, "Refresh interval in seconds (default from config, 10s fallback)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	svc, err := connect()
	if err != nil {
		return err
	}

	interval := watchInterval
	if interval <= 0 {
		if registry, err := config.LoadRegistry(); err == nil && registry.Preferences != nil {
			interval = registry.Preferences.PollInterval
		}
	}
	if interval <= 0 {
		interval = 10
	}

	model := ui.NewWatchModel(svc, time.Duration(interval)*time.Second)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}

// parseChanges parses key=value arguments into merge-engine changes.
// Values must be integers; the API stores every writable field numerically.
func parseChanges(args []string) ([]acapi.KeyValue, error) {
	changes := make([]acapi.KeyValue, 0, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected <key>=<value>, got %q", arg)
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("value for %s must be an integer, got %q", key, raw)
		}
		changes = append(changes, acapi.KeyValue{Key: key, Value: value})
	}
	return changes, nil
}
