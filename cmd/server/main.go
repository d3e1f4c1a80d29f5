package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annel0/mine-colony/internal/api"
	"github.com/annel0/mine-colony/internal/config"
	"github.com/annel0/mine-colony/internal/logging"
	"github.com/annel0/mine-colony/internal/observability"
	"github.com/annel0/mine-colony/internal/storage"
	"github.com/annel0/mine-colony/internal/world"
)

func main() {
	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{} // дефолты
	}

	// Инициализируем систему логирования
	if err := logging.InitLogger(cfg.Log.Dir); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseLogger()

	seed := cfg.World.GetSeed()
	maxLayer := cfg.World.GetMaxLayer()
	restPort := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	metricsPort := fmt.Sprintf(":%d", cfg.Server.GetMetricsPort())

	logging.Info("⛏️  Запуск сервера карты шахтёрской колонии...")
	logging.Info("📡 Конфигурация: seed=%d, слои=[%d..%d], REST API=%s, метрики=%s",
		seed, cfg.World.MinLayer, maxLayer, restPort, metricsPort)

	// === ТЕЛЕМЕТРИЯ ===
	ctx := context.Background()
	shutdownTelemetry, err := observability.InitTelemetry(ctx, "colony-map")
	if err != nil {
		// Трассировка опциональна: без коллектора сервер всё равно работает
		logging.Warn("OpenTelemetry недоступен: %v", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	// === ХРАНИЛИЩЕ СНАПШОТОВ ===
	var persistence world.ChunkPersistence
	var chunkStore *storage.BadgerChunkStore
	if dataPath := cfg.World.GetDataPath(); dataPath != "" {
		chunkStore, err = storage.NewBadgerChunkStore(dataPath)
		if err != nil {
			logging.Error("❌ Ошибка открытия хранилища чанков: %v", err)
			log.Fatalf("❌ Ошибка открытия хранилища чанков: %v", err)
		}
		persistence = chunkStore
		logging.Info("💾 Снапшоты чанков: %s", dataPath)
	} else {
		logging.Info("💾 Персистентность отключена, мир полностью in-memory")
	}

	// === МИР ===
	w, err := world.NewWorld(seed, world.Options{
		MinLayer:    cfg.World.MinLayer,
		MaxLayer:    maxLayer,
		ChunkSize:   cfg.World.ChunkSize,
		Persistence: persistence,
	})
	if err != nil {
		logging.Error("❌ Ошибка создания мира: %v", err)
		log.Fatalf("❌ Ошибка создания мира: %v", err)
	}

	// === REST API ===
	restServer := api.NewRestServer(api.Config{
		Port:  restPort,
		World: w,
	})

	go func() {
		if err := restServer.Start(); err != nil {
			logging.Error("❌ Ошибка REST сервера: %v", err)
		}
	}()

	// Отдельный слушатель для Prometheus: скрейпер ходит на свой порт,
	// не разделяя его с публичным API
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{Addr: metricsPort, Handler: metricsMux}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("❌ Ошибка сервера метрик: %v", err)
		}
	}()

	logging.Info("✅ Сервер карты готов принимать запросы")
	logging.Info("   🌐 REST API: http://localhost%s", restPort)
	logging.Info("   📊 Метрики: http://localhost%s/metrics", metricsPort)
	logging.Info("   ❤️  Health check: http://localhost%s/health", restPort)
	logging.Info("💡 Примеры:")
	logging.Info("   curl 'http://localhost%s/api/map/view?layer=0&min_x=0&min_y=0&max_x=63&max_y=63&zoom=1'", restPort)
	logging.Info("   curl 'http://localhost%s/api/map/summary?layer=3&min_x=0&min_y=0&max_x=1023&max_y=1023&level=4'", restPort)

	// Канал для получения сигналов ОС
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logging.Info("📡 Получен сигнал %v, завершение работы...", sig)

	// === GRACEFUL SHUTDOWN ===
	if err := metricsServer.Shutdown(ctx); err != nil {
		logging.Error("Ошибка остановки сервера метрик: %v", err)
	}
	if err := shutdownTelemetry(ctx); err != nil {
		logging.Error("Ошибка остановки телеметрии: %v", err)
	}
	if chunkStore != nil {
		if err := chunkStore.Close(); err != nil {
			logging.Error("Ошибка закрытия хранилища чанков: %v", err)
		}
	}

	logging.Info("👋 Сервер успешно остановлен")
}
