package cmd

import (
	"log/slog"

	"rms/internal/adapters/in/ws"
	"rms/internal/adapters/out/postgres"
	"rms/internal/core/application/usecases/commands"
	"rms/internal/core/application/usecases/queries"
	"rms/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into command and query handlers. All
// object graph construction happens here; the rest of the code receives its
// dependencies ready-made.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	hub        *ws.Hub
	logger     *slog.Logger
}

// NewCompositionRoot builds the dependency graph on top of an open database
// connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        ws.NewHub(config.WSAccessToken, logger),
		logger:     logger,
	}
}

// Hub returns the WebSocket hub, both the notifier used by handlers and the
// connection endpoint.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateMarkItemReadyCommandHandler() commands.MarkItemReadyCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkItemReadyCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateMarkReadyForBillingCommandHandler() commands.MarkReadyForBillingCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkReadyForBillingCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateAddItemsCommandHandler() commands.AddItemsCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddItemsCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateSplitOrderCommandHandler() commands.SplitOrderCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSplitOrderCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateCloseOrderCommandHandler() commands.CloseOrderCommandHandler {
	var f commands.BillingUoWFactory = FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCloseOrderCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	var f commands.OverrideUoWFactory = FuncOverrideUoWFactory(func() commands.OverrideUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetOrderStatusCommandHandler(f, c.hub, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLiveOrdersQueryHandler() queries.GetLiveOrdersQueryHandler {
	return queries.NewGetLiveOrdersQueryHandler(c.gormDB)
}

// CreateDisplayRefreshJob builds the periodic live-snapshot broadcast job.
func (c *CompositionRoot) CreateDisplayRefreshJob() *jobs.DisplayRefreshJob {
	return jobs.NewDisplayRefreshJob(c.CreateGetLiveOrdersQueryHandler(), c.hub, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}

type FuncBillingUoWFactory func() commands.BillingUoW

func (f FuncBillingUoWFactory) Create() commands.BillingUoW {
	return f()
}

type FuncOverrideUoWFactory func() commands.OverrideUoW

func (f FuncOverrideUoWFactory) Create() commands.OverrideUoW {
	return f()
}
