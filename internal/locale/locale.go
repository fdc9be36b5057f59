// Package locale holds the supported interface languages and every
// user-visible message the core posts.
package locale

import (
	"fmt"

	"golang.org/x/text/language"
)

// Language is a supported interface language.
type Language string

const (
	Portuguese Language = "pt"
	English    Language = "en"
)

var supported = []Language{Portuguese, English}

var matcher = language.NewMatcher([]language.Tag{language.Portuguese, language.English})

// Parse maps a BCP 47 tag ("pt-BR", "en_US", "en") onto a supported language.
// Anything unrecognised falls back to Portuguese.
func Parse(tag string) Language {
	t, err := language.Parse(tag)
	if err != nil {
		return Portuguese
	}
	_, idx, _ := matcher.Match(t)
	return supported[idx]
}

func (l Language) pick(pt, en string) string {
	if l == English {
		return en
	}
	return pt
}

// Welcome is posted after a successful login.
func (l Language) Welcome(name string) string {
	return fmt.Sprintf(l.pick("Bem-vindo, %s!", "Welcome, %s!"), name)
}

func (l Language) FavoriteAdded(title string) string {
	return fmt.Sprintf(l.pick("%s adicionado à sua lista", "%s added to your list"), title)
}

func (l Language) FavoriteRemoved(title string) string {
	return fmt.Sprintf(l.pick("%s removido dos favoritos", "%s removed from favorites"), title)
}

func (l Language) AvatarUpdated() string {
	return l.pick("Foto de perfil atualizada", "Profile picture updated")
}

func (l Language) LoggedOut() string {
	return l.pick("Sessão encerrada", "Signed out")
}

// Greeting opens every curator chat.
func (l Language) Greeting(name string) string {
	return fmt.Sprintf(l.pick(
		"Olá, %s! Sou o Alex, o curador oficial da MONTFLIX. Estou aqui para te ajudar a encontrar o filme perfeito no nosso catálogo 100%% gratuito. O que vamos assistir hoje?",
		"Hello, %s! I'm Alex, MONTFLIX's official curator. I'm here to help you find the perfect movie in our 100%% free catalog. What shall we watch today?",
	), name)
}

// Guest is the name used when the chat is opened without a session.
func (l Language) Guest() string {
	return l.pick("usuário", "user")
}

func (l Language) MissingKey() string {
	return l.pick(
		"Oi! Aqui é o Alex. A chave GEMINI_API_KEY ainda não foi configurada; adicione-a ao ambiente para eu poder te dar dicas de filmes!",
		"Hi! This is Alex. GEMINI_API_KEY is not configured yet; add it to the environment to enable my cinema recommendations!",
	)
}

func (l Language) Glitch() string {
	return l.pick(
		"Tive um pequeno problema técnico aqui na central. Pode perguntar de novo?",
		"I had a minor technical glitch. Could you ask again?",
	)
}

func (l Language) EmptyReply() string {
	return l.pick("Estou processando sua dica cinematográfica...", "I'm still working on your movie tip...")
}

// Name is the language name used inside curator prompts.
func (l Language) Name() string {
	return l.pick("Português", "Inglês")
}
