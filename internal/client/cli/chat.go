package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/hopekeeper/internal/chat"
	"github.com/dmitrijs2005/hopekeeper/internal/entities"
)

func (a *App) chatCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:         "chat",
		Short:       "Talk with Dr. Sage, the supportive companion",
		Args:        cobra.NoArgs,
		Annotations: loginRequired(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch mode {
			case entities.SessionTypeChat, entities.SessionTypeGuided, entities.SessionTypeCrisis:
			default:
				return fmt.Errorf("unknown chat mode %q", mode)
			}
			return a.chat(cmd.Context(), mode)
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", entities.SessionTypeChat, "session type: chat, guided or crisis")
	return cmd
}

// chat runs a conversation until the user types /end or input ends. A
// number alone picks one of the suggested openers.
func (a *App) chat(ctx context.Context, mode string) error {
	responder := chat.NewResponder(chat.NewSelector(nil), a.chatDelay(), a.logger.With("component", "chat"))
	conv := chat.NewConversation(a.store, responder, mode)

	a.say(conv.Start(ctx))
	a.println("Not sure where to start? Pick a number:")
	for i, p := range chat.Prompts {
		a.printf("  %d. %s\n", i+1, p)
	}
	a.println("Type /end to finish.")

	for {
		text, err := GetSimpleText(a.reader, "", a.out)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if text == "/end" {
			break
		}
		if n, err := parseInRange(text, 1, len(chat.Prompts)); err == nil {
			text = chat.Prompts[n-1]
			a.printf("You: %s\n", text)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		a.println("Dr. Sage is thinking...")
		reply, ok := conv.Send(ctx, text)
		if ok {
			a.say(reply)
		}
	}

	if conv.SessionID() == "" {
		a.println("This conversation could not be saved.")
	}
	a.println("Take care. I'm here whenever you need me.")
	return nil
}

func (a *App) say(m entities.ChatMessage) {
	a.printf("Dr. Sage:\n%s\n", strings.TrimRight(a.render(m.Content), "\n"))
}
