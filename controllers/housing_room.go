package controllers

import (
	"net/http"
	"strconv"
	"sykli-college-api/config"
	"sykli-college-api/models"
	"sykli-college-api/services"
	"time"

	"github.com/gin-gonic/gin"
)

// GetHousingBuildings lists buildings with their rooms
func GetHousingBuildings(c *gin.Context) {
	var buildings []models.HousingBuilding
	if err := config.DB.Preload("Rooms").Order("name").Find(&buildings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch buildings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"buildings": buildings})
}

// GetAvailableRooms lists rooms currently open for allocation
func GetAvailableRooms(c *gin.Context) {
	var rooms []models.HousingRoom
	query := config.DB.Preload("Building").Where("status = ?", models.RoomAvailable)

	if building := c.Query("building_id"); building != "" {
		query = query.Where("building_id = ?", building)
	}

	if err := query.Order("building_id, room_number").Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rooms": rooms,
		"total": len(rooms),
	})
}

// CreateHousingBuilding creates a building (staff only)
func CreateHousingBuilding(c *gin.Context) {
	type BuildingRequest struct {
		Name    string `json:"name" binding:"required"`
		Address string `json:"address" binding:"required"`
	}

	var req BuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	building := models.HousingBuilding{
		Name:     req.Name,
		Address:  req.Address,
		CreateAt: &now,
		UpdateAt: &now,
	}

	if err := config.DB.Create(&building).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create building"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Building created successfully",
		"building": building,
	})
}

// CreateHousingRoom creates a room in a building (staff only)
func CreateHousingRoom(c *gin.Context) {
	type RoomRequest struct {
		BuildingID  int     `json:"building_id" binding:"required"`
		RoomNumber  string  `json:"room_number" binding:"required"`
		Capacity    int     `json:"capacity" binding:"required,gt=0"`
		MonthlyRate float64 `json:"monthly_rate" binding:"required,gt=0"`
		Amenities   string  `json:"amenities"`
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var building models.HousingBuilding
	if err := config.DB.Where("building_id = ?", req.BuildingID).First(&building).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid building"})
		return
	}

	now := time.Now()
	room := models.HousingRoom{
		BuildingID:  req.BuildingID,
		RoomNumber:  req.RoomNumber,
		Capacity:    req.Capacity,
		MonthlyRate: req.MonthlyRate,
		Amenities:   req.Amenities,
		Status:      models.RoomAvailable,
		CreateAt:    &now,
		UpdateAt:    &now,
	}

	if err := config.DB.Create(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Room created successfully",
		"room":    room,
	})
}

// AllocateHousingRoom assigns an approved application to a room (staff only)
func AllocateHousingRoom(c *gin.Context) {
	type AllocateRequest struct {
		RoomID int `json:"room_id" binding:"required"`
	}

	var req AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	var application models.HousingApplication
	if err := config.DB.Where("housing_application_id = ?", id).First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Housing application not found"})
		return
	}

	userID, _ := c.Get("userID")
	assignment, err := services.AllocateRoom(config.DB, &application, req.RoomID, userID.(int))
	if err != nil {
		c.JSON(housingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Room allocated successfully",
		"assignment": assignment,
	})
}

// UnassignHousingRoom removes an assignment and frees the room (staff only)
func UnassignHousingRoom(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("assignment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment id"})
		return
	}

	userID, _ := c.Get("userID")
	if err := services.UnassignRoom(config.DB, id, userID.(int)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unassign room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room unassigned and freed"})
}

// DeleteHousingRoom deletes a room without assignment history (staff only)
func DeleteHousingRoom(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room id"})
		return
	}

	if err := services.DeleteRoom(config.DB, id); err != nil {
		c.JSON(housingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}

// DeleteHousingBuilding deletes an empty building (staff only)
func DeleteHousingBuilding(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid building id"})
		return
	}

	if err := services.DeleteBuilding(config.DB, id); err != nil {
		c.JSON(housingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Building deleted successfully"})
}
