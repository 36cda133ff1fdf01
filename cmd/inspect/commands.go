package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"wa-directory/auth"
	"wa-directory/domain"
	"wa-directory/repositories"
	"wa-directory/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "inspect",
		Short:         "Inspect the directory store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("db", database.DefaultPath, "Path to badger DB")
	cmd.PersistentFlags().String("log-level", "WARN", "Log level")

	cmd.AddCommand(newChatsCmd())
	cmd.AddCommand(newBlocklistCmd())
	cmd.AddCommand(newContactCmd())
	cmd.AddCommand(newTokenCmd())
	return cmd
}

func newChatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "List or seed stored chats",
	}
	cmd.AddCommand(newChatsListCmd())
	cmd.AddCommand(newChatsAddCmd())
	return cmd
}

func newChatsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Page through chats in ordering key order",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			search, _ := cmd.Flags().GetString("search")
			before, _ := cmd.Flags().GetString("before")
			all, _ := cmd.Flags().GetBool("all")

			return withDB(cmd, func(db *badger.DB, log *slog.Logger) error {
				directory := services.NewDirectoryService(log, services.Dependencies{
					Chats: repositories.NewChatRepository(db, log),
				}, "")
				var cursor *domain.Cursor
				if before != "" {
					cursor = lo.ToPtr(domain.Cursor(before))
				}
				var chats []domain.ChatRecord
				for {
					page, err := directory.LoadChats(cmd.Context(), count, cursor, domain.LoadChatsOptions{Search: search})
					if err != nil {
						return err
					}
					chats = append(chats, page.Chats...)
					cursor = page.Cursor
					if !all || cursor == nil {
						break
					}
				}
				renderChats(cmd.OutOrStdout(), chats)
				if cursor != nil {
					fmt.Fprintln(cmd.OutOrStdout(), color.Cyan.Render("next cursor: "+string(*cursor)))
				}
				return nil
			})
		},
	}
	cmd.Flags().Int("count", 20, "Page size")
	cmd.Flags().String("search", "", "Case-insensitive substring of name or jid")
	cmd.Flags().String("before", "", "Cursor to resume after")
	cmd.Flags().Bool("all", false, "Follow cursors until the last page")
	return cmd
}

func newChatsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <jid>",
		Short: "Insert or move a chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jid, ok := domain.NormalizeJID(args[0])
			if !ok {
				return fmt.Errorf("%q is not a jid", args[0])
			}
			name, _ := cmd.Flags().GetString("name")
			timestamp, _ := cmd.Flags().GetInt64("timestamp")
			if timestamp == 0 {
				timestamp = time.Now().Unix()
			}
			return withDB(cmd, func(db *badger.DB, log *slog.Logger) error {
				return repositories.NewChatRepository(db, log).Upsert(cmd.Context(), domain.ChatRecord{
					JID:       jid,
					Name:      name,
					Timestamp: timestamp,
				})
			})
		},
	}
	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().Int64("timestamp", 0, "Last activity, unix seconds (default now)")
	return cmd
}

func newBlocklistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blocklist",
		Short: "Print the last persisted blocklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, func(db *badger.DB, _ *slog.Logger) error {
				jids, err := repositories.NewBlocklistRepository(db).Load(cmd.Context())
				if err != nil {
					return err
				}
				if len(jids) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), color.Gray.Render("blocklist is empty"))
					return nil
				}
				for i, jid := range jids {
					fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i+1, color.Red.Render(string(jid)))
				}
				return nil
			})
		},
	}
}

func newContactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contact <jid>",
		Short: "Print what is cached about a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jid, ok := domain.NormalizeJID(args[0])
			if !ok {
				return fmt.Errorf("%q is not a jid", args[0])
			}
			return withDB(cmd, func(db *badger.DB, log *slog.Logger) error {
				contact, found, err := repositories.NewContactRepository(db, log).GetContact(cmd.Context(), jid)
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintln(cmd.OutOrStdout(), color.Yellow.Render("no contact cached for "+string(jid)))
					return nil
				}
				table := newTable(cmd.OutOrStdout(), "Field", "Value")
				table.Append([]string{"JID", string(contact.JID)})
				table.Append([]string{"Name", contact.Name})
				table.Append([]string{"Status", contact.Status})
				table.Append([]string{"Picture", contact.ImgURL})
				table.Append([]string{"Updated", contact.UpdatedAt.Format(time.RFC3339)})
				table.Render()
				return nil
			})
		},
	}
}

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token <user>",
		Short: "Mint a bearer token for the directory server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, _ := cmd.Flags().GetString("secret")
			if secret == "" {
				secret = os.Getenv("AUTH_SECRET")
			}
			if secret == "" {
				return fmt.Errorf("missing secret (set via --secret or AUTH_SECRET)")
			}
			ttl, _ := cmd.Flags().GetDuration("ttl")
			roles, _ := cmd.Flags().GetStringSlice("roles")
			token, err := auth.NewTokenManager(secret).GenerateToken(args[0], roles, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().String("secret", "", "Signing secret (default $AUTH_SECRET)")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	cmd.Flags().StringSlice("roles", nil, "Roles carried by the token")
	return cmd
}

func withDB(cmd *cobra.Command, fn func(db *badger.DB, log *slog.Logger) error) error {
	path, _ := cmd.Flags().GetString("db")
	level, _ := cmd.Flags().GetString("log-level")
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return fmt.Errorf("error while opening badger: %w", err)
	}
	defer func() { _ = db.Close() }()
	return fn(db, logs.GetLoggerFromString(level))
}

func renderChats(w io.Writer, chats []domain.ChatRecord) {
	table := newTable(w, "JID", "Name", "Timestamp", "Unread", "Flags")
	for _, chat := range chats {
		var flags []string
		if chat.Pinned {
			flags = append(flags, color.Green.Render("pinned"))
		}
		if chat.Archived {
			flags = append(flags, color.Gray.Render("archived"))
		}
		table.Append([]string{
			string(chat.JID),
			lo.CoalesceOrEmpty(chat.Name, "-"),
			time.Unix(chat.Timestamp, 0).UTC().Format(time.RFC3339),
			strconv.Itoa(chat.Unread),
			strings.Join(flags, " "),
		})
	}
	table.Render()
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
