package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JKLegendary/enterprise/models"
	"github.com/JKLegendary/enterprise/services"
	"github.com/JKLegendary/enterprise/utils"
)

type OrderController struct {
	DB      *gorm.DB
	Service *services.OrderService
}

func NewOrderController(db *gorm.DB, service *services.OrderService) *OrderController {
	return &OrderController{DB: db, Service: service}
}

// PlaceOrder -> cashier completes payment; allocates the order number and
// creates the order at status COOKING.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	type reqBody struct {
		Items []services.LineRequest `json:"items" binding:"required"`
		Paid  float64                `json:"paid"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.PlaceOrder(body.Items, body.Paid)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderCreationFailed):
			utils.RespondError(c, http.StatusInternalServerError, err)
		default:
			utils.RespondError(c, http.StatusBadRequest, err)
		}
		return
	}

	utils.InfoLogger.Printf("Order #%d placed: total %s, change %s",
		order.Number, utils.FormatGBP(order.Total), utils.FormatGBP(order.Change))

	utils.RespondJSON(c, http.StatusCreated, "Order confirmed and sent to cook", order)
}

// MarkReady -> cook flips COOKING -> READY. A double-tap lands on the
// already-transitioned path and is answered as a success no-op.
func (oc *OrderController) MarkReady(c *gin.Context) {
	oc.applyTransition(c, oc.Service.MarkReady, "Order marked ready")
}

// MarkPickedUp -> completion station flips READY -> PICKED_UP.
func (oc *OrderController) MarkPickedUp(c *gin.Context) {
	oc.applyTransition(c, oc.Service.MarkPickedUp, "Order picked up")
}

// GetCookingOrders -> cook display
func (oc *OrderController) GetCookingOrders(c *gin.Context) {
	orders, err := services.CookingOrders(oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cooking orders", orders)
}

// GetReadyOrders -> cashier ready list / completion display / board
func (oc *OrderController) GetReadyOrders(c *gin.Context) {
	orders, err := services.ReadyOrders(oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ready orders", orders)
}

// GetOrderHistory -> most recent orders, all statuses
func (oc *OrderController) GetOrderHistory(c *gin.Context) {
	orders, err := services.OrderHistory(oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order history", orders)
}

// GetOrderByID -> detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := oc.Service.GetOrder(id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

func (oc *OrderController) applyTransition(c *gin.Context, apply func(uint) (models.Order, error), okMessage string) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := apply(id)
	switch {
	case err == nil:
		utils.RespondJSON(c, http.StatusOK, okMessage, order)
	case errors.Is(err, services.ErrAlreadyTransitioned):
		// Success no-op: the transition had already been applied and the
		// original timestamps are intact.
		utils.RespondJSON(c, http.StatusOK, "Order already transitioned", order)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrOrderNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

func orderIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("order_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return 0, false
	}
	return uint(id), true
}
