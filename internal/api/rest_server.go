package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/mine-colony/internal/middleware"
	"github.com/annel0/mine-colony/internal/vec"
	"github.com/annel0/mine-colony/internal/world"
	"github.com/annel0/mine-colony/internal/world/tile"
)

// RestServer — HTTP-интерфейс карты: чтение тайлов и регионов,
// добыча, представления для рендера
type RestServer struct {
	router *gin.Engine
	world  *world.World
	port   string
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port  string // порт для запуска сервера
	World *world.World
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	loggerMw := middleware.NewRequestLogger()
	router.Use(loggerMw.Handler())

	router.Use(otelgin.Middleware("map_api"))

	promMw := middleware.NewPrometheusMiddleware("map_api")
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	server := &RestServer{
		router: router,
		world:  config.World,
		port:   config.Port,
	}

	server.setupRoutes()
	return server
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	api := rs.router.Group("/api")

	mapGroup := api.Group("/map")
	{
		mapGroup.GET("/info", rs.handleMapInfo)
		mapGroup.GET("/view", rs.handleMapView)
		mapGroup.GET("/tile", rs.handleGetTile)
		mapGroup.POST("/tile", rs.handleSetTile)
		mapGroup.POST("/mine", rs.handleMine)
		mapGroup.GET("/summary", rs.handleRegionSummary)
	}

	// Health check
	rs.router.GET("/health", rs.handleHealth)
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// respondError переводит доменные ошибки мира в HTTP-статусы
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, world.ErrInvalidLayer),
		errors.Is(err, world.ErrOutOfBounds),
		errors.Is(err, world.ErrUnknownTile):
		status = http.StatusBadRequest
	case errors.Is(err, world.ErrGeneration):
		status = http.StatusInternalServerError
	}
	c.JSON(status, GenericResponse{Success: false, Message: err.Error()})
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "некорректный параметр " + name,
		})
		return 0, false
	}
	return v, true
}

// handleMapInfo возвращает параметры мира
func (rs *RestServer) handleMapInfo(c *gin.Context) {
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Параметры мира",
		Data: map[string]interface{}{
			"seed":       rs.world.Seed(),
			"min_layer":  rs.world.MinLayer(),
			"max_layer":  rs.world.MaxLayer(),
			"chunk_size": world.ChunkSize,
		},
	})
}

// handleMapView строит представление прямоугольника карты.
// Зум определяет форму ответа: тайлы вблизи, LOD-сводки вдали.
func (rs *RestServer) handleMapView(c *gin.Context) {
	layer, ok := queryInt(c, "layer", 0)
	if !ok {
		return
	}
	minX, ok := queryInt(c, "min_x", 0)
	if !ok {
		return
	}
	minY, ok := queryInt(c, "min_y", 0)
	if !ok {
		return
	}
	maxX, ok := queryInt(c, "max_x", 0)
	if !ok {
		return
	}
	maxY, ok := queryInt(c, "max_y", 0)
	if !ok {
		return
	}

	zoom := 1.0
	if raw := c.Query("zoom"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, GenericResponse{
				Success: false,
				Message: "некорректный параметр zoom",
			})
			return
		}
		zoom = parsed
	}

	viewport := vec.NewRect(vec.Vec2{X: minX, Y: minY}, vec.Vec2{X: maxX, Y: maxY})
	view, err := rs.world.Query(layer, viewport, zoom)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Представление построено",
		Data:    view,
	})
}

// handleGetTile возвращает один тайл
func (rs *RestServer) handleGetTile(c *gin.Context) {
	layer, ok := queryInt(c, "layer", 0)
	if !ok {
		return
	}
	x, ok := queryInt(c, "x", 0)
	if !ok {
		return
	}
	y, ok := queryInt(c, "y", 0)
	if !ok {
		return
	}

	id, err := rs.world.TileAt(layer, vec.Vec2{X: x, Y: y})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Тайл получен",
		Data: map[string]interface{}{
			"layer":    layer,
			"x":        x,
			"y":        y,
			"tile":     id,
			"passable": tile.IsPassable(id),
			"grade":    tile.OreGrade(id),
		},
	})
}

// TileRequest — тело запросов мутации тайла
type TileRequest struct {
	Layer int         `json:"layer"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Tile  tile.TileID `json:"tile"`
}

// handleSetTile устанавливает тайл (строительство, редактор)
func (rs *RestServer) handleSetTile(c *gin.Context) {
	var req TileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса",
		})
		return
	}

	if err := rs.world.SetTile(req.Layer, vec.Vec2{X: req.X, Y: req.Y}, req.Tile); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Тайл установлен",
	})
}

// handleMine добывает тайл: порода и руда становятся полом
func (rs *RestServer) handleMine(c *gin.Context) {
	var req TileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса",
		})
		return
	}

	mined, ok, err := rs.world.MineTile(req.Layer, vec.Vec2{X: req.X, Y: req.Y})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Добыча выполнена",
		Data: map[string]interface{}{
			"mined": ok,
			"tile":  mined,
			"grade": tile.OreGrade(mined),
		},
	})
}

// handleRegionSummary отвечает региональными LOD-сводками.
// exact=true форсирует генерацию области, exact=false отвечает оценкой.
func (rs *RestServer) handleRegionSummary(c *gin.Context) {
	layer, ok := queryInt(c, "layer", 0)
	if !ok {
		return
	}
	minX, ok := queryInt(c, "min_x", 0)
	if !ok {
		return
	}
	minY, ok := queryInt(c, "min_y", 0)
	if !ok {
		return
	}
	maxX, ok := queryInt(c, "max_x", 0)
	if !ok {
		return
	}
	maxY, ok := queryInt(c, "max_y", 0)
	if !ok {
		return
	}
	level, ok := queryInt(c, "level", 0)
	if !ok {
		return
	}
	exact := c.Query("exact") == "true"

	region := vec.NewRect(vec.Vec2{X: minX, Y: minY}, vec.Vec2{X: maxX, Y: maxY})
	summaries, err := rs.world.RegionSummary(layer, region, level, exact)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Сводки построены",
		Data: map[string]interface{}{
			"level":     level,
			"summaries": summaries,
		},
	})
}

// handleHealth проверка состояния сервера
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// Start запускает REST сервер
func (rs *RestServer) Start() error {
	return rs.router.Run(rs.port)
}

// Router возвращает внутренний gin.Engine (для httptest)
func (rs *RestServer) Router() *gin.Engine {
	return rs.router
}
