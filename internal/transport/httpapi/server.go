package httpapi

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/eshop/internal/service/billing"
	"github.com/vladislavdragonenkov/eshop/internal/service/catalog"
	"github.com/vladislavdragonenkov/eshop/internal/service/customer"
	"github.com/vladislavdragonenkov/eshop/internal/service/store"
	"github.com/vladislavdragonenkov/eshop/internal/service/user"
)

// Server — HTTP-слой поверх прикладных сервисов. Каждый обработчик
// транслирует JSON-запрос в вызов сервиса и доменную ошибку в HTTP-статус.
type Server struct {
	billing   *billing.Service
	catalog   *catalog.Service
	customers *customer.Service
	users     *user.Service
	storeInfo *store.Service
	logger    *log.Entry
}

// NewServer конструирует HTTP-слой с зависимостями.
func NewServer(
	billingSvc *billing.Service,
	catalogSvc *catalog.Service,
	customerSvc *customer.Service,
	userSvc *user.Service,
	storeSvc *store.Service,
	logger *log.Entry,
) *Server {
	if logger == nil {
		logger = log.New().WithField("component", "http-api")
	}
	return &Server{
		billing:   billingSvc,
		catalog:   catalogSvc,
		customers: customerSvc,
		users:     userSvc,
		storeInfo: storeSvc,
		logger:    logger,
	}
}

// Handler собирает маршруты API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/products", s.listProducts)
	mux.HandleFunc("POST /api/products", s.createProduct)
	mux.HandleFunc("GET /api/products/{id}", s.getProduct)
	mux.HandleFunc("PUT /api/products/{id}", s.updateProduct)
	mux.HandleFunc("DELETE /api/products/{id}", s.deleteProduct)
	mux.HandleFunc("POST /api/products/{id}/category/{categoryID}", s.assignProductCategory)

	mux.HandleFunc("GET /api/categories", s.listCategories)
	mux.HandleFunc("POST /api/categories", s.createCategory)
	mux.HandleFunc("GET /api/categories/{id}", s.getCategory)
	mux.HandleFunc("PUT /api/categories/{id}", s.updateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.deleteCategory)

	mux.HandleFunc("GET /api/customers", s.listCustomers)
	mux.HandleFunc("POST /api/customers", s.createCustomer)
	mux.HandleFunc("GET /api/customers/{id}", s.getCustomer)
	mux.HandleFunc("PUT /api/customers/{id}", s.updateCustomer)
	mux.HandleFunc("DELETE /api/customers/{id}", s.deleteCustomer)
	mux.HandleFunc("GET /api/customers/{id}/total", s.customerTotal)

	mux.HandleFunc("GET /api/invoices", s.listInvoices)
	mux.HandleFunc("POST /api/invoices", s.createInvoice)
	mux.HandleFunc("GET /api/invoices/{id}", s.getInvoice)
	mux.HandleFunc("PUT /api/invoices/{id}", s.updateInvoice)
	mux.HandleFunc("DELETE /api/invoices/{id}", s.deleteInvoice)
	mux.HandleFunc("GET /api/invoices/{id}/items", s.listInvoiceItems)
	mux.HandleFunc("PUT /api/invoice-items/{id}", s.updateInvoiceItem)
	mux.HandleFunc("DELETE /api/invoice-items/{id}", s.deleteInvoiceItem)

	mux.HandleFunc("POST /api/users/register", s.registerUser)
	mux.HandleFunc("POST /api/users/login", s.loginUser)
	mux.HandleFunc("GET /api/users", s.listUsers)

	mux.HandleFunc("GET /api/store", s.getStoreInfo)
	mux.HandleFunc("POST /api/store", s.createStoreInfo)
	mux.HandleFunc("PUT /api/store/{id}", s.updateStoreInfo)

	return mux
}
