// Package http exposes the order engine over a JSON API. Handlers parse
// requests, delegate to command and query handlers, and map domain errors
// onto HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"rms/internal/core/application/usecases/commands"
	"rms/internal/core/application/usecases/queries"
	"rms/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler         commands.CreateOrderCommandHandler
	markItemReadyHandler       commands.MarkItemReadyCommandHandler
	markReadyForBillingHandler commands.MarkReadyForBillingCommandHandler
	addItemsHandler            commands.AddItemsCommandHandler
	splitOrderHandler          commands.SplitOrderCommandHandler
	closeOrderHandler          commands.CloseOrderCommandHandler
	setOrderStatusHandler      commands.SetOrderStatusCommandHandler

	getOrderHandler      queries.GetOrderQueryHandler
	getAllOrdersHandler  queries.GetAllOrdersQueryHandler
	getLiveOrdersHandler queries.GetLiveOrdersQueryHandler
}

// NewServer creates the HTTP server with all command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	markItemReadyHandler commands.MarkItemReadyCommandHandler,
	markReadyForBillingHandler commands.MarkReadyForBillingCommandHandler,
	addItemsHandler commands.AddItemsCommandHandler,
	splitOrderHandler commands.SplitOrderCommandHandler,
	closeOrderHandler commands.CloseOrderCommandHandler,
	setOrderStatusHandler commands.SetOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getLiveOrdersHandler queries.GetLiveOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		markItemReadyHandler:       markItemReadyHandler,
		markReadyForBillingHandler: markReadyForBillingHandler,
		addItemsHandler:            addItemsHandler,
		splitOrderHandler:          splitOrderHandler,
		closeOrderHandler:          closeOrderHandler,
		setOrderStatusHandler:      setOrderStatusHandler,
		getOrderHandler:            getOrderHandler,
		getAllOrdersHandler:        getAllOrdersHandler,
		getLiveOrdersHandler:       getLiveOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetAllOrders)
	api.GET("/orders/live", s.GetLiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/items", s.AddItems)
	api.POST("/orders/:id/split", s.SplitOrder)
	api.POST("/orders/:id/ready-for-billing", s.MarkReadyForBilling)
	api.POST("/orders/:id/close", s.CloseOrder)
	api.PUT("/orders/:id/status", s.SetOrderStatus)
	api.POST("/order-items/:itemId/ready", s.MarkItemReady)
}

// ErrorBody is the JSON error envelope of the API.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ItemRequest is one requested order line.
type ItemRequest struct {
	MenuItemID int64           `json:"menuItemId"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	TableID    int64           `json:"tableId"`
	Discount   decimal.Decimal `json:"discount"`
	TaxPercent decimal.Decimal `json:"taxPercent"`
	Items      []ItemRequest   `json:"items"`
}

// ItemsRequest is the body of item additions and splits.
type ItemsRequest struct {
	Items []ItemRequest `json:"items"`
}

// SetStatusRequest is the body of PUT /orders/:id/status.
type SetStatusRequest struct {
	Status string `json:"status"`
}

func toItemInputs(items []ItemRequest) []commands.ItemInput {
	inputs := make([]commands.ItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, commands.ItemInput{
			MenuItemID: item.MenuItemID,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
		})
	}
	return inputs
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorBody{Code: code, Message: message})
}

// domainError maps classified domain errors onto HTTP status codes.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorJSON(ctx, http.StatusInternalServerError, "internal error")
	}
}

func orderIDParam(ctx echo.Context) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(ctx).Int64("id", &id).BindError(); err != nil {
		return 0, err
	}
	return id, nil
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(req.TableID, req.Discount, req.TaxPercent, toItemInputs(req.Items))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return s.createdOrderView(ctx, orderID)
}

// createdOrderView reads a just-committed order back as the hydrated view.
// The order was committed one statement ago, so failing to read it back is
// an internal invariant failure, not a caller error.
func (s *Server) createdOrderView(ctx echo.Context, orderID int64) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "internal error")
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}
	if view == nil {
		return errorJSON(ctx, http.StatusInternalServerError, "created order could not be read back")
	}

	return ctx.JSON(http.StatusCreated, view)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := orderIDParam(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}
	if view == nil {
		return errorJSON(ctx, http.StatusNotFound, "order not found")
	}

	return ctx.JSON(http.StatusOK, view)
}

// GetAllOrders handles GET /api/v1/orders.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	views, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, views)
}

// GetLiveOrders handles GET /api/v1/orders/live.
func (s *Server) GetLiveOrders(ctx echo.Context) error {
	views, err := s.getLiveOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetLiveOrdersQuery())
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, views)
}

// AddItems handles POST /api/v1/orders/:id/items.
func (s *Server) AddItems(ctx echo.Context) error {
	id, err := orderIDParam(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	var req ItemsRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewAddItemsCommand(id, toItemInputs(req.Items))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.addItemsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SplitOrder handles POST /api/v1/orders/:id/split.
func (s *Server) SplitOrder(ctx echo.Context) error {
	id, err := orderIDParam(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	var req ItemsRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewSplitOrderCommand(id, toItemInputs(req.Items))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	newID, err := s.splitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return s.createdOrderView(ctx, newID)
}

// MarkReadyForBilling handles POST /api/v1/orders/:id/ready-for-billing.
func (s *Server) MarkReadyForBilling(ctx echo.Context) error {
	id, err := orderIDParam(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	cmd, err := commands.NewMarkReadyForBillingCommand(id)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.markReadyForBillingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CloseOrder handles POST /api/v1/orders/:id/close.
func (s *Server) CloseOrder(ctx echo.Context) error {
	id, err := orderIDParam(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	cmd, err := commands.NewCloseOrderCommand(id)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.closeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetOrderStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) SetOrderStatus(ctx echo.Context) error {
	id, err := orderIDParam(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	var req SetStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewSetOrderStatusCommand(id, req.Status)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.setOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkItemReady handles POST /api/v1/order-items/:itemId/ready.
func (s *Server) MarkItemReady(ctx echo.Context) error {
	var itemID int64
	if err := echo.PathParamsBinder(ctx).Int64("itemId", &itemID).BindError(); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid item id")
	}

	cmd, err := commands.NewMarkItemReadyCommand(itemID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.markItemReadyHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
