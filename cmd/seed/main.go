// seed puebla la base de datos con una organización de demostración: usuario
// admin y vendedor, catálogo mínimo y la configuración de correlativos de un
// punto de venta. Pensado para entornos de desarrollo.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL", err)
	}
	defer pool.Close()

	organizations := postgres.NewOrganizationRepository(pool)
	users := postgres.NewUserRepository(pool)
	clients := postgres.NewClientRepository(pool)
	salePoints := postgres.NewSalePointRepository(pool)
	documentTypes := postgres.NewDocumentTypeRepository(pool)
	paymentTerms := postgres.NewPaymentTermRepository(pool)
	paymentForms := postgres.NewPaymentFormRepository(pool)
	articles := postgres.NewArticleRepository(pool)
	counters := postgres.NewSalePointDocumentTypeRepository(pool)

	org := &entity.Organization{
		ID:    uuid.New().String(),
		Name:  "Comercial La Ceiba S.A. de C.V.",
		TaxID: "0614-010203-101-2",
	}
	if err := organizations.Create(ctx, org); err != nil {
		fail("crear organización", err)
	}

	now := time.Now()
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	admin := &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Email:          "admin@laceiba.example",
		PasswordHash:   string(adminHash),
		Name:           "Administrador",
		Role:           entity.RoleAdmin,
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := users.Create(ctx, admin); err != nil {
		fail("crear usuario admin", err)
	}

	vendHash, _ := bcrypt.GenerateFromPassword([]byte("vendedor123"), bcrypt.DefaultCost)
	vendedor := &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Email:          "vendedor@laceiba.example",
		PasswordHash:   string(vendHash),
		Name:           "Vendedor Demo",
		Role:           entity.RoleVendedor,
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := users.Create(ctx, vendedor); err != nil {
		fail("crear usuario vendedor", err)
	}

	client := &entity.Client{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Name:           "Consumidor Final",
		IsActive:       true,
	}
	if err := clients.Create(ctx, client); err != nil {
		fail("crear cliente", err)
	}

	salePoint := &entity.SalePoint{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Name:           "Sala de ventas San Salvador",
		Address:        "Av. La Capilla 217, San Salvador",
		IsActive:       true,
	}
	if err := salePoints.Create(ctx, salePoint); err != nil {
		fail("crear punto de venta", err)
	}
	if err := users.GrantSalePointAccess(ctx, vendedor.ID, salePoint.ID); err != nil {
		fail("asignar punto de venta al vendedor", err)
	}

	docType := &entity.DocumentType{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Code:           "01",
		Name:           "Factura de consumidor final",
	}
	if err := documentTypes.Create(ctx, docType); err != nil {
		fail("crear tipo de documento", err)
	}

	contado := &entity.PaymentTerm{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Name:           "Contado",
		Days:           0,
	}
	if err := paymentTerms.Create(ctx, contado); err != nil {
		fail("crear condición de pago", err)
	}
	efectivo := &entity.PaymentForm{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Name:           "Efectivo",
	}
	if err := paymentForms.Create(ctx, efectivo); err != nil {
		fail("crear forma de pago", err)
	}

	demoArticles := []*entity.Article{
		{
			OrganizationID: org.ID,
			Code:           "CAFE-500",
			Name:           "Café molido 500g",
			RetailPrice:    decimal.RequireFromString("11.30"),
			Cost:           decimal.RequireFromString("6.50"),
			IsActive:       true,
		},
		{
			OrganizationID: org.ID,
			Code:           "AZUC-1K",
			Name:           "Azúcar blanca 1kg",
			RetailPrice:    decimal.RequireFromString("1.25"),
			Cost:           decimal.RequireFromString("0.80"),
			IsActive:       true,
		},
	}
	for _, a := range demoArticles {
		a.ID = uuid.New().String()
		if err := articles.Create(ctx, a); err != nil {
			fail("crear artículo "+a.Code, err)
		}
	}

	counter := &entity.SalePointDocumentType{
		ID:                      uuid.New().String(),
		OrganizationID:          org.ID,
		SalePointID:             salePoint.ID,
		DocumentTypeID:          docType.ID,
		InitialNumberAuthorized: 1,
		FinalNumberAuthorized:   100000,
		LatestNumberIssued:      0, // nada emitido todavía
		Serial:                  "FCF",
	}
	if err := counter.Validate(); err != nil {
		fail("validar contador", err)
	}
	if err := counters.Create(ctx, counter); err != nil && err != domain.ErrDuplicate {
		fail("crear contador de correlativos", err)
	}

	fmt.Println("Seed completado.")
	fmt.Printf("  organization_id:  %s\n", org.ID)
	fmt.Printf("  admin:            admin@laceiba.example / admin12345\n")
	fmt.Printf("  vendedor:         vendedor@laceiba.example / vendedor123\n")
	fmt.Printf("  client_id:        %s\n", client.ID)
	fmt.Printf("  sale_point_id:    %s\n", salePoint.ID)
	fmt.Printf("  document_type_id: %s\n", docType.ID)
	fmt.Printf("  payment_term_id:  %s\n", contado.ID)
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(1)
}
