package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bmoutsourcing/payslip-api/internal/models"
	"github.com/bmoutsourcing/payslip-api/internal/utils"
	"github.com/google/uuid"
)

type contextKey string

const userContextKey contextKey = "authUser"

// Logger logs every request with a generated request id so a response
// can be matched back to its log lines.
func (app *application) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()

		app.infoLog.Printf("[%s] %s %s from %s", requestID, r.Method, r.URL.RequestURI(), r.RemoteAddr)
		next.ServeHTTP(w, r)
		app.infoLog.Printf("[%s] completed in %s", requestID, time.Since(start))
	})
}

// Authenticate verifies the Bearer token and stashes its claims in the
// request context. Protected routes reject with a 401 envelope.
func (app *application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.WriteJSON(w, http.StatusUnauthorized, models.Response{
				Error:   true,
				Status:  "unauthorized",
				Message: "Authorization token is missing",
			})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := utils.VerifyJWT(token, app.config.JWT)
		if err != nil {
			app.errorLog.Println("ERROR_01_Authenticate:", err)
			utils.WriteJSON(w, http.StatusUnauthorized, models.Response{
				Error:   true,
				Status:  "unauthorized",
				Message: "Invalid or expired token",
			})
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
