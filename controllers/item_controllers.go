package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JKLegendary/enterprise/models"
	"github.com/JKLegendary/enterprise/services"
	"github.com/JKLegendary/enterprise/utils"
)

var ErrNoPermission = errors.New("you do not have permission for this action")

type ItemController struct {
	DB      *gorm.DB
	Monitor *services.ViewMonitor
}

func NewItemController(db *gorm.DB, monitor *services.ViewMonitor) *ItemController {
	return &ItemController{DB: db, Monitor: monitor}
}

// GetAllItems -> the catalog in creation order
func (ic *ItemController) GetAllItems(c *gin.Context) {
	items, err := services.Catalog(ic.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of items", items)
}

// CreateItem -> admin adds a menu entry
func (ic *ItemController) CreateItem(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type reqBody struct {
		Name  string  `json:"name" binding:"required"`
		Price float64 `json:"price"`
		Notes string  `json:"notes"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Price < 0 || math.IsNaN(body.Price) || math.IsInf(body.Price, 0) {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidPrice)
		return
	}

	item := models.Item{
		Name:  body.Name,
		Price: utils.RoundCurrency(body.Price),
		Notes: body.Notes,
	}
	if err := ic.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Item added to catalog: %s (%s)", item.Name, utils.FormatGBP(item.Price))
	ic.notify()

	utils.RespondJSON(c, http.StatusCreated, "Item created", item)
}

// DeleteItem -> admin removes a menu entry. Past orders keep their line
// snapshots, so this only affects what can be sold from now on.
func (ic *ItemController) DeleteItem(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	idStr := c.Param("item_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	res := ic.DB.Delete(&models.Item{}, id)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("item not found"))
		return
	}

	ic.notify()
	utils.RespondJSON(c, http.StatusOK, "Item deleted", gin.H{"item_id": id})
}

func (ic *ItemController) notify() {
	if ic.Monitor != nil {
		ic.Monitor.Notify()
	}
}
