package api

import (
	"net/http"

	"github.com/bmoutsourcing/payslip-api/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	// --- Global middlewares ---
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.Use(app.Logger) // Simple logger

	// --- Health check endpoint ---
	mux.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, 200, "Live")
	})

	mux.Post("/api/v1/login", app.Handlers.Auth.Signin)

	mux.Route("/api/v1", func(r chi.Router) {
		r.Use(app.Authenticate)

		// --- HR (Employee) Routes ---
		r.Route("/employees", func(r chi.Router) {
			// Paginated employee list with optional search
			// Example: GET /api/v1/employees?page=1&per_page=10&search=smith
			r.Get("/", app.Handlers.Employee.PaginatedEmployeeList)
			r.Post("/", app.Handlers.Employee.AddEmployee)
			r.Get("/{id}", app.Handlers.Employee.GetEmployee)
			r.Put("/{id}", app.Handlers.Employee.UpdateEmployee)
			r.Delete("/{id}", app.Handlers.Employee.DeleteEmployee)
		})

		// --- Banking Routes ---
		r.Route("/banking", func(r chi.Router) {
			r.Get("/", app.Handlers.Banking.PaginatedBankAccountList)
			r.Post("/", app.Handlers.Banking.AddBankAccount)
			// Bank accounts of one employee, for the payslip form
			// Example: GET /api/v1/banking/employee/20250042
			r.Get("/employee/{employee_id}", app.Handlers.Banking.GetBankAccountsByEmployee)
			r.Put("/{id}", app.Handlers.Banking.UpdateBankAccount)
			r.Delete("/{id}", app.Handlers.Banking.DeleteBankAccount)
		})

		// --- Employee Login Account Routes ---
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", app.Handlers.Account.PaginatedAccountList)
			r.Post("/", app.Handlers.Account.AddAccount)
			r.Get("/types", app.Handlers.Account.AccountTypes)
			r.Get("/statuses", app.Handlers.Account.AccountStatuses)
			r.Get("/{id}", app.Handlers.Account.GetAccount)
			r.Put("/{id}", app.Handlers.Account.UpdateAccount)
			r.Delete("/{id}", app.Handlers.Account.DeleteAccount)
		})

		// --- Staff User Routes ---
		r.Route("/users", func(r chi.Router) {
			r.Get("/", app.Handlers.User.ListUsers)
			r.Post("/", app.Handlers.User.AddUser)
			r.Get("/{id}", app.Handlers.User.GetUser)
			r.Put("/{id}", app.Handlers.User.UpdateUser)
			r.Delete("/{id}", app.Handlers.User.DeleteUser)
		})

		// --- Payslip Routes ---
		r.Route("/payslips", func(r chi.Router) {
			// Paginated payslip list with filters
			// Example: GET /api/v1/payslips?page=1&search=PS-2025&status=Paid&start_date=2025-01-01
			r.Get("/", app.Handlers.Payslip.PaginatedPayslipList)
			r.Post("/", app.Handlers.Payslip.AddPayslip)
			r.Get("/{id}", app.Handlers.Payslip.GetPayslip)
			r.Put("/{id}", app.Handlers.Payslip.UpdatePayslip)
			r.Delete("/{id}", app.Handlers.Payslip.DeletePayslip)

			// Rebuild both PDF copies for an existing payslip
			r.Post("/{id}/regenerate", app.Handlers.Payslip.RegeneratePayslip)

			// PDF delivery, copy_type is "agent" or "admin"
			// Example: GET /api/v1/payslips/7/pdf/agent/download
			r.Get("/{id}/pdf/{copy_type}/download", app.Handlers.PDF.DownloadPDF)
			r.Get("/{id}/pdf/{copy_type}/view", app.Handlers.PDF.ViewPDF)
		})
	})

	return mux
}
