package handlers

import (
	"boutique/internal/config"
	"boutique/internal/repos"
	"boutique/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Sessions *services.SessionManager

	AuthHandler      *AuthHandler
	DashboardHandler *DashboardHandler
	ProductHandler   *ProductHandler
	StockHandler     *StockHandler
	SaleHandler      *SaleHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	adminRepo := repos.NewAdminRepo(db)
	prodRepo := repos.NewProductRepo(db)
	saleRepo := repos.NewSaleRepo(db)
	reportRepo := repos.NewReportRepo(db)

	authSvc := services.NewAuthService(adminRepo)
	sessions := services.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	catalogSvc := services.NewCatalogService(prodRepo)
	saleSvc := services.NewSaleService(saleRepo)
	reportSvc := services.NewReportService(reportRepo)

	return &Deps{
		Sessions:         sessions,
		AuthHandler:      &AuthHandler{Auth: authSvc, Sessions: sessions, CookieSecure: cfg.CookieSecure},
		DashboardHandler: &DashboardHandler{Reports: reportSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		StockHandler:     &StockHandler{Catalog: catalogSvc},
		SaleHandler:      &SaleHandler{Catalog: catalogSvc, Sales: saleSvc},
	}
}
