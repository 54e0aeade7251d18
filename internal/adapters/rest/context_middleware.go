package rest

import (
	"net/http"

	"joytop-admin-service/internal/constants"
	"joytop-admin-service/internal/contextkeys"

	"golang.org/x/text/language"
)

var (
	supportedLangs = []language.Tag{language.Uzbek, language.Russian, language.English}
	langCodes      = []string{constants.LangUzbek, constants.LangRussian, constants.LangEnglish}
	langMatcher    = language.NewMatcher(supportedLangs)
)

// LanguageMiddleware выбирает язык ответов API маркетплейса: заголовок lang,
// затем Accept-Language, иначе fallback.
func LanguageMiddleware(fallback string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := negotiateLang(r.Header.Get("lang"), r.Header.Get("Accept-Language"), fallback)
			ctx := contextkeys.ContextWithLang(r.Context(), lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func negotiateLang(explicit, acceptLanguage, fallback string) string {
	var candidates []language.Tag
	if explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			candidates = append(candidates, tag)
		}
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			candidates = append(candidates, tags...)
		}
	}
	if len(candidates) == 0 {
		return fallback
	}

	_, idx, confidence := langMatcher.Match(candidates...)
	if confidence == language.No {
		return fallback
	}
	return langCodes[idx]
}

// SessionMiddleware кладет cookies администратора в контекст, клиент API
// пробрасывает их в каждый запрос к маркетплейсу.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookies := r.Cookies()
		if len(cookies) == 0 {
			next.ServeHTTP(w, r)
			return
		}
		ctx := contextkeys.ContextWithSessionCookies(r.Context(), cookies)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
