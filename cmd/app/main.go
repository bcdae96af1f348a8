package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"rms/cmd"
	httpin "rms/internal/adapters/in/http"
	"rms/internal/adapters/out/postgres/auditrepo"
	"rms/internal/adapters/out/postgres/billrepo"
	"rms/internal/adapters/out/postgres/menurepo"
	"rms/internal/adapters/out/postgres/orderrepo"
	"rms/internal/adapters/out/postgres/tablerepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go app.Hub().Run(ctx)

	refreshJob := app.CreateDisplayRefreshJob()
	if err := refreshJob.Start(); err != nil {
		log.Fatalf("Failed to start display refresh job: %v", err)
	}
	defer refreshJob.Stop()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		DBHost:        goDotEnvVariable("DB_HOST"),
		DBPort:        goDotEnvVariable("DB_PORT"),
		DBUser:        goDotEnvVariable("DB_USER"),
		DBPassword:    goDotEnvVariable("DB_PASSWORD"),
		DBName:        goDotEnvVariable("DB_NAME"),
		DBSslMode:     goDotEnvVariable("DB_SSLMODE"),
		WSAccessToken: goDotEnvVariable("WS_ACCESS_TOKEN"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&tablerepo.TableDTO{},
		&menurepo.MenuItemDTO{},
		&billrepo.BillDTO{},
		&auditrepo.AuditLogDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/ws/orders", app.Hub().Handle)

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateMarkItemReadyCommandHandler(),
		app.CreateMarkReadyForBillingCommandHandler(),
		app.CreateAddItemsCommandHandler(),
		app.CreateSplitOrderCommandHandler(),
		app.CreateCloseOrderCommandHandler(),
		app.CreateSetOrderStatusCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetAllOrdersQueryHandler(),
		app.CreateGetLiveOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
