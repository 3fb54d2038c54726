package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/hopekeeper/internal/entities"
)

// SessionStore persists the transcript. Both calls return nil on failure.
type SessionStore interface {
	AddChatSession(ctx context.Context, s entities.ChatSession) *entities.ChatSession
	UpdateChatSession(ctx context.Context, id string, p entities.ChatSessionPatch) *entities.ChatSession
}

// Prompts are conversation starters offered by the client.
var Prompts = []string{
	"I'm having a really hard time with intrusive thoughts today",
	"Can you help me understand why I keep checking things?",
	"I'm feeling overwhelmed and don't know where to start",
	"I think I made some progress this week",
	"My family doesn't understand what I'm going through",
	"I'm ready to try some exposure exercises",
}

const greetingBody = `! I'm Dr. Sage, and I'm really glad you're here today.

I want you to know that this is your space - completely confidential and judgment-free. I'm here to listen, understand, and walk alongside you in whatever you're experiencing.

I specialize in helping people with OCD, anxiety, and the thoughts and feelings that can feel so overwhelming sometimes. I use approaches that research shows really work - things like CBT, ERP therapy, mindfulness, and others - but more than anything, I believe in meeting you exactly where you are.

Before we dive in, I'm curious - how are you feeling right now, in this moment? And what brought you here today?

Take your time. There's no rush, and whatever you share is exactly what we need to start with. ☕`

const initialSummary = "Initial warm greeting and rapport building"

// Greeting opens a conversation according to the hour of t.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good morning" + greetingBody
	case h < 17:
		return "Good afternoon" + greetingBody
	default:
		return "Good evening" + greetingBody
	}
}

// Summary is the running session_summary of a transcript.
func Summary(messages, mood int) string {
	return fmt.Sprintf("Therapeutic conversation - %d exchanges. Mood: %d/10", messages, mood)
}

// Conversation is one chat session: it keeps the transcript and user
// context and mirrors both to the SessionStore after every exchange.
type Conversation struct {
	store     SessionStore
	responder *Responder
	mode      string
	now       func() time.Time
	started   time.Time
	sessionID string
	messages  entities.Messages
	user      UserContext
}

func NewConversation(store SessionStore, responder *Responder, mode string) *Conversation {
	if mode == "" {
		mode = entities.SessionTypeChat
	}
	return &Conversation{
		store:     store,
		responder: responder,
		mode:      mode,
		now:       time.Now,
		user:      NewUserContext(),
	}
}

// Start posts the greeting and creates the stored session. A failed store
// call leaves the conversation usable but unsaved.
func (c *Conversation) Start(ctx context.Context) entities.ChatMessage {
	c.started = c.now()
	greeting := entities.ChatMessage{
		ID:        uuid.NewString(),
		Type:      entities.MessageTypeAI,
		Content:   Greeting(c.started),
		Timestamp: c.started,
		Category:  CategoryGeneral,
		Emotion:   EmotionSupportive,
	}
	c.messages = entities.Messages{greeting}

	s := c.store.AddChatSession(ctx, entities.ChatSession{
		SessionType:    c.mode,
		Messages:       c.messages,
		SessionSummary: initialSummary,
	})
	if s != nil {
		c.sessionID = s.ID
	}
	return greeting
}

// Send answers one user message. Blank input is ignored and reports false.
func (c *Conversation) Send(ctx context.Context, text string) (entities.ChatMessage, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return entities.ChatMessage{}, false
	}

	c.messages = append(c.messages, entities.ChatMessage{
		ID:        uuid.NewString(),
		Type:      entities.MessageTypeUser,
		Content:   text,
		Timestamp: c.now(),
	})

	reply := c.responder.Respond(ctx, text, &c.user)
	ai := entities.ChatMessage{
		ID:        uuid.NewString(),
		Type:      entities.MessageTypeAI,
		Content:   reply.Content,
		Timestamp: c.now(),
		Category:  reply.Category,
		Severity:  reply.Severity,
		Emotion:   reply.Emotion,
	}
	c.messages = append(c.messages, ai)

	c.save(ctx)
	return ai, true
}

func (c *Conversation) save(ctx context.Context) {
	if c.sessionID == "" {
		return
	}
	msgs := append(entities.Messages(nil), c.messages...)
	summary := Summary(len(c.messages), c.user.Mood)
	duration := int(c.now().Sub(c.started) / time.Minute)
	mood := c.user.Mood

	c.store.UpdateChatSession(context.WithoutCancel(ctx), c.sessionID, entities.ChatSessionPatch{
		Messages:       &msgs,
		SessionSummary: &summary,
		Duration:       &duration,
		MoodAfter:      &mood,
	})
}

func (c *Conversation) SessionID() string { return c.sessionID }
func (c *Conversation) Messages() []entities.ChatMessage {
	return append([]entities.ChatMessage(nil), c.messages...)
}
func (c *Conversation) UserContext() UserContext { return c.user }
