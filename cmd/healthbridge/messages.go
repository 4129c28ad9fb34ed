package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/healthbridge/healthbridge/internal/domain/messaging"
	"github.com/healthbridge/healthbridge/internal/platform/format"
)

func messagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Direct messaging",
	}
	cmd.AddCommand(messagesSendCmd())
	cmd.AddCommand(messagesConversationCmd())
	cmd.AddCommand(messagesListCmd())
	cmd.AddCommand(messagesUnreadCmd())
	return cmd
}

func messagesSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <recipient-id> <text>",
		Short: "Send a message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			recipientID, err := parseID(args[0], "recipient")
			if err != nil {
				return err
			}
			msg, err := messaging.NewClient(app.api).Send(cmd.Context(), recipientID, args[1])
			if err != nil {
				return err
			}
			return printJSON(msg)
		},
	}
}

func messagesConversationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conversation <user-id>",
		Short: "Show the conversation with a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			otherID, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			client := messaging.NewClient(app.api)
			limit, _ := cmd.Flags().GetInt("limit")
			msgs, err := client.Conversation(cmd.Context(), otherID, limit)
			if err != nil {
				return err
			}
			for _, m := range msgs {
				fmt.Printf("[%s] %s: %s\n", format.DateTime(m.CreatedAt), m.SenderName, m.Content)
			}
			if markRead, _ := cmd.Flags().GetBool("mark-read"); markRead {
				return client.MarkRead(cmd.Context(), otherID)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 50, "max messages to fetch")
	cmd.Flags().Bool("mark-read", true, "mark the conversation read")
	return cmd
}

func messagesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			convs, err := messaging.NewClient(app.api).Conversations(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(convs)
		},
	}
}

func messagesUnreadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unread",
		Short: "Show unread counts, optionally polling",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			client := messaging.NewClient(app.api)

			watch, _ := cmd.Flags().GetBool("watch")
			if !watch {
				count, err := client.Unread(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(count)
			}

			interval, _ := cmd.Flags().GetDuration("interval")
			watcher := messaging.NewUnreadWatcher(client, interval, app.logger)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go watcher.Run(ctx)
			for count := range watcher.Updates() {
				fmt.Printf("[%s] unread: %d\n", time.Now().Format("15:04:05"), count.TotalUnread)
				for _, by := range count.UnreadByUser {
					fmt.Printf("  %s (%s): %d\n", by.UserName, by.UserRole, by.UnreadCount)
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("watch", false, "keep polling until interrupted")
	cmd.Flags().Duration("interval", messaging.DefaultPollInterval, "poll interval")
	return cmd
}
