// Package main реализует rosterctl — CLI поверх клиентского стора:
// логин, просмотр и правка ростера, подписка на push-обновления.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"member-roster-service/internal/api"
	"member-roster-service/internal/config"
	"member-roster-service/internal/model"
	"member-roster-service/internal/push"
	"member-roster-service/internal/storage"
	"member-roster-service/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildStore собирает стор из конфигурации окружения.
// Сессия живёт в bolt-файле и переживает запуски CLI.
func buildStore(logger *slog.Logger) (*store.SessionStore, func(), error) {
	cfg := config.Load()

	st, err := storage.NewBolt(cfg.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open session storage: %w", err)
	}

	navigate := func(path string) {
		logger.Info("navigate", slog.String("path", path))
	}

	s := store.NewSessionStore(api.NewClient(cfg.APIBaseURL), st, cfg.StorageKey, navigate, logger)
	cleanup := func() { _ = st.Close() }
	return s, cleanup, nil
}

func rootCmd() *cobra.Command {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	root := &cobra.Command{
		Use:           "rosterctl",
		Short:         "Клиент ростера участников: сессия, CRUD и live-обновления",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		loginCmd(logger),
		logoutCmd(logger),
		listCmd(logger),
		addCmd(logger),
		updateCmd(logger),
		removeCmd(logger),
		watchCmd(logger),
	)
	return root
}

func loginCmd(logger *slog.Logger) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Войти по e-mail и паролю",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := buildStore(logger)
			if err != nil {
				return err
			}
			defer cleanup()

			if !s.Login(cmd.Context(), email, password) {
				return fmt.Errorf("login failed: %s", s.Err())
			}

			sess := s.Session()
			fmt.Printf("logged in as %s <%s>\n", sess.User.Name, sess.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "e-mail участника")
	cmd.Flags().StringVarP(&password, "password", "p", "", "пароль")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Выйти и очистить сохранённую сессию",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := buildStore(logger)
			if err != nil {
				return err
			}
			defer cleanup()

			s.Logout()
			fmt.Println("logged out")
			return nil
		},
	}
}

func listCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Показать текущий ростер",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := buildStore(logger)
			if err != nil {
				return err
			}
			defer cleanup()

			s.FetchUsers(cmd.Context())
			if msg := s.Err(); msg != "" {
				return fmt.Errorf("%s", msg)
			}

			printRoster(s.Users())
			return nil
		},
	}
}

func addCmd(logger *slog.Logger) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Добавить участника (роль всегда member)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := buildStore(logger)
			if err != nil {
				return err
			}
			defer cleanup()

			s.AddMember(cmd.Context(), model.User{Name: name, Email: email, Password: password})
			if msg := s.Err(); msg != "" {
				return fmt.Errorf("%s", msg)
			}

			printRoster(s.Users())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "имя")
	cmd.Flags().StringVar(&email, "email", "", "e-mail")
	cmd.Flags().StringVar(&password, "password", "", "пароль")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func updateCmd(logger *slog.Logger) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Частично обновить участника по id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := buildStore(logger)
			if err != nil {
				return err
			}
			defer cleanup()

			// Ростер нужен локально: патч накладывается на существующую запись
			s.FetchUsers(cmd.Context())

			var patch model.UserPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("email") {
				patch.Email = &email
			}
			if cmd.Flags().Changed("password") {
				patch.Password = &password
			}

			s.UpdateMember(cmd.Context(), args[0], patch)
			if msg := s.Err(); msg != "" {
				return fmt.Errorf("%s", msg)
			}

			printRoster(s.Users())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "новое имя")
	cmd.Flags().StringVar(&email, "email", "", "новый e-mail")
	cmd.Flags().StringVar(&password, "password", "", "новый пароль")
	return cmd
}

func removeCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Удалить участника по id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := buildStore(logger)
			if err != nil {
				return err
			}
			defer cleanup()

			s.FetchUsers(cmd.Context())
			if err := s.RemoveMember(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", s.Err())
			}

			printRoster(s.Users())
			return nil
		},
	}
}

func watchCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Подписаться на push-обновления ростера",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := buildStore(logger)
			if err != nil {
				return err
			}
			defer cleanup()

			cfg := config.Load()
			sub, err := push.Dial(cfg.PushURL, logger)
			if err != nil {
				return err
			}
			defer sub.Close()

			s.FetchUsers(cmd.Context())
			printRoster(s.Users())

			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case ev, ok := <-sub.Events():
					if !ok {
						return fmt.Errorf("push channel closed")
					}
					if ev.Type != model.EventTypeMembers {
						continue
					}
					var users []model.User
					if err := json.Unmarshal(ev.Data, &users); err != nil {
						logger.Error("decode push payload", slog.Any("err", err))
						continue
					}
					s.SetUsers(users)
					fmt.Println("--- roster updated ---")
					printRoster(s.Users())
				}
			}
		},
	}
}

func printRoster(users []model.User) {
	for _, u := range users {
		fmt.Printf("%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
	}
	fmt.Printf("total: %d\n", len(users))
}
