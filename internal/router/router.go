package router

import (
	"time"

	"pasteleria/internal/config"
	"pasteleria/internal/handler"
	"pasteleria/internal/middleware"
	"pasteleria/internal/repository"
	"pasteleria/internal/service"
	"pasteleria/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	catalogoRepo := repository.NewCatalogoRepository(db)
	detalleRepo := repository.NewDetalleTortaRepository(db)
	cotizacionRepo := repository.NewCotizacionRepository(db)
	clienteRepo := repository.NewClienteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	precioSvc := service.NewPrecioService(catalogoRepo)
	tortaSvc := service.NewTortaService(detalleRepo, cotizacionRepo, catalogoRepo, precioSvc)
	catalogoSvc := service.NewCatalogoService(catalogoRepo, rdb)
	consultaSvc := service.NewConsultaService(catalogoRepo, precioSvc, rdb)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	cotizacionSvc := service.NewCotizacionService(
		cotizacionRepo, detalleRepo, clienteRepo, catalogoRepo,
		tortaSvc, dispatcher, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	cotizacionesH := handler.NewCotizacionesHandler(cotizacionSvc)
	detalleTortasH := handler.NewDetalleTortasHandler(tortaSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	consultaH := handler.NewConsultaPreciosHandler(consultaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Price check — public, cached
	r.GET("/v1/precio/:tipo/:id/:porciones", consultaH.ConsultarPrecio)

	v1 := r.Group("/v1")
	{
		cot := v1.Group("/cotizaciones")
		{
			cot.POST("", cotizacionesH.Crear)
			cot.GET("", cotizacionesH.Listar)
			cot.GET("/buscar", cotizacionesH.Buscar)
			cot.GET("/:id", cotizacionesH.Obtener)
			cot.PUT("/:id", cotizacionesH.Actualizar)
			cot.PUT("/:id/estado", cotizacionesH.ActualizarEstado)
			cot.POST("/:id/items", cotizacionesH.AgregarItem)
			cot.GET("/:id/pdf", cotizacionesH.DescargarPDF)
			cot.POST("/:id/enviar", cotizacionesH.Enviar)
		}

		items := v1.Group("/items-cotizacion")
		{
			items.GET("", cotizacionesH.ListarItems)
			items.PUT("/:id", cotizacionesH.ActualizarItem)
			items.DELETE("/:id", cotizacionesH.EliminarItem)
		}

		tortas := v1.Group("/detalle-tortas")
		{
			tortas.POST("", detalleTortasH.Crear)
			tortas.GET("/:id", detalleTortasH.Obtener)
			tortas.PUT("/:id", detalleTortasH.Actualizar)
			tortas.DELETE("/:id", detalleTortasH.Eliminar)
		}

		catalogo := v1.Group("/catalogo/:tipo")
		{
			catalogo.GET("", catalogoH.Listar)
			catalogo.POST("", catalogoH.Crear)
			catalogo.GET("/:id", catalogoH.Obtener)
			catalogo.PUT("/:id", catalogoH.Actualizar)
			catalogo.DELETE("/:id", catalogoH.Eliminar)

			catalogo.GET("/:id/precios", catalogoH.ListarPrecios)
			catalogo.POST("/:id/precios", catalogoH.CrearPrecio)
			catalogo.PUT("/precios/:precioId", catalogoH.ActualizarPrecio)
			catalogo.DELETE("/precios/:precioId", catalogoH.EliminarPrecio)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
