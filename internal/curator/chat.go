// Package curator implements the movie-curator chat. The chat only relays
// questions to a Recommender together with a catalog snapshot; replies are
// shown as returned and never interpreted.
package curator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/montflix/internal/catalog"
	"github.com/dmitrijs2005/montflix/internal/locale"
	"github.com/dmitrijs2005/montflix/internal/logging"
)

// ErrNotConfigured is returned by recommenders that have no API key.
var ErrNotConfigured = errors.New("recommender not configured")

type Speaker string

const (
	SpeakerUser    Speaker = "user"
	SpeakerCurator Speaker = "model"
)

// Message is one line of the chat transcript.
type Message struct {
	From Speaker
	Text string
}

// Request is everything a Recommender receives for one question.
type Request struct {
	Question string
	Catalog  []catalog.Item
	Language locale.Language
}

// Recommender turns a question about the catalog into a reply.
type Recommender interface {
	Recommend(ctx context.Context, req Request) (string, error)
}

// Chat is one curator conversation.
type Chat struct {
	rec      Recommender
	lang     locale.Language
	items    []catalog.Item
	timeout  time.Duration
	log      logging.Logger
	messages []Message
}

type ChatOption func(*Chat)

// WithTimeout bounds each Recommend call. Zero means no bound.
func WithTimeout(d time.Duration) ChatOption {
	return func(c *Chat) { c.timeout = d }
}

func WithLogger(l logging.Logger) ChatOption {
	return func(c *Chat) { c.log = l }
}

// NewChat opens a conversation greeting name. An empty name greets the guest.
func NewChat(rec Recommender, name string, items []catalog.Item, lang locale.Language, opts ...ChatOption) *Chat {
	c := &Chat{
		rec:   rec,
		lang:  lang,
		items: slices.Clone(items),
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if name == "" {
		name = lang.Guest()
	}
	c.messages = []Message{{From: SpeakerCurator, Text: lang.Greeting(name)}}
	return c
}

// Ask sends question to the recommender and returns the reply, which is also
// appended to the transcript. Failures are answered with a localized apology.
func (c *Chat) Ask(ctx context.Context, question string) string {
	question = strings.TrimSpace(question)
	if question == "" {
		return ""
	}
	c.messages = append(c.messages, Message{From: SpeakerUser, Text: question})

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reply, err := c.rec.Recommend(ctx, Request{Question: question, Catalog: c.items, Language: c.lang})
	switch {
	case errors.Is(err, ErrNotConfigured):
		c.log.Warn(ctx, "curator has no api key")
		reply = c.lang.MissingKey()
	case err != nil:
		c.log.Warn(ctx, "curator request failed", "error", err)
		reply = c.lang.Glitch()
	case strings.TrimSpace(reply) == "":
		reply = c.lang.EmptyReply()
	}

	c.messages = append(c.messages, Message{From: SpeakerCurator, Text: reply})
	return reply
}

// Messages returns the transcript, greeting first.
func (c *Chat) Messages() []Message {
	return slices.Clone(c.messages)
}

// Greeting returns the opening message.
func (c *Chat) Greeting() string {
	return c.messages[0].Text
}

// CatalogLines renders items as "- Title (Category)" lines.
func CatalogLines(items []catalog.Item) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s (%s)", it.Title, it.Category)
	}
	return b.String()
}

// BuildPrompt renders the user prompt sent along with each question.
func BuildPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usuário: %q\n", req.Question)
	b.WriteString("Catálogo Atual (Tudo Grátis):\n")
	b.WriteString(CatalogLines(req.Catalog))
	b.WriteString("\n\n")
	b.WriteString("Você é o Alex, o Curador de Cinema da MONTFLIX.\n")
	b.WriteString("1. Sua missão é ajudar o usuário a escolher um filme do nosso catálogo acima.\n")
	b.WriteString("2. Seja empolgado, use gírias de cinema e deixe claro que tudo é grátis.\n")
	b.WriteString("3. Se o filme não estiver na lista, sugira o mais parecido que temos.\n")
	fmt.Fprintf(&b, "4. Responda em %s.\n", req.Language.Name())
	return b.String()
}
