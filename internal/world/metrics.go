package world

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus-метрики подсистемы карты. Регистрируются в дефолтном
// регистре при инициализации пакета; HTTP-эндпоинт /metrics поднимает
// REST-сервер через middleware.
var (
	chunksGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "minemap",
		Name:      "chunks_generated_total",
		Help:      "Общее число сгенерированных чанков по слоям.",
	}, []string{"layer"})

	chunksLoaded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "minemap",
		Name:      "chunks_loaded_total",
		Help:      "Чанков, восстановленных из снапшот-хранилища вместо генерации.",
	})

	chunkCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "minemap",
		Name:      "chunk_cache_hits_total",
		Help:      "Обращений к уже материализованным чанкам.",
	})

	tileQueries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "minemap",
		Name:      "tile_queries_total",
		Help:      "Точечных запросов тайла через фасад мира.",
	})

	lodQueries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "minemap",
		Name:      "lod_queries_total",
		Help:      "Региональных LOD-запросов по типу (exact/approx).",
	}, []string{"mode"})
)

func init() {
	prometheus.MustRegister(chunksGenerated, chunksLoaded, chunkCacheHits, tileQueries, lodQueries)
}

func layerLabel(layer int) string {
	return strconv.Itoa(layer)
}
