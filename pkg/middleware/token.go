package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vfg2006/erp-report-api/pkg/apiErrors"
)

type contextKey string

const ContextKeyToken contextKey = "erp_token"

// TokenMiddleware extrai o token Bearer e o guarda no contexto.
// O token não é validado aqui: ele é repassado ao ERP, que decide se aceita.
func TokenMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "O cabeçalho Authorization deve usar o formato Bearer", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyToken, strings.TrimSpace(token))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromContext retorna o token extraído pelo TokenMiddleware
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(ContextKeyToken).(string)
	return token
}
