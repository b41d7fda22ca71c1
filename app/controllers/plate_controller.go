package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/avtonomer/platemarket/app/models"
	"github.com/avtonomer/platemarket/app/repository"
	"github.com/avtonomer/platemarket/internal/pkg/geolocation"
	"github.com/avtonomer/platemarket/internal/pkg/subscriptions"
	"github.com/avtonomer/platemarket/internal/pkg/usercontext"
)

const (
	msgPlateNotFound     = "Номерной знак не найден"
	msgNoFreeListings    = "У вас не осталось бесплатных объявлений в этом месяце"
	msgNotYourListing    = "Вы не можете редактировать это объявление"
	msgNotYourTopRating  = "Вы можете добавлять в топ только свои номера"
	msgPriceHistoryPlans = "Просмотр истории цен доступен только пользователям с подписками Medium и Premium"
	msgTopRatingAdded    = "Номер успешно добавлен в топ-рейтинг"
	msgLikeSet           = "Лайк поставлен"
	msgLikeRemoved       = "Лайк убран"
)

var validate = validator.New()

// PlateCreateRequest is the payload for creating a listing.
type PlateCreateRequest struct {
	Number      string  `json:"number" validate:"required,max=20"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	RegionID    uint    `json:"region_id" validate:"required"`
	CityID      uint    `json:"city_id" validate:"required"`
	Description string  `json:"description" validate:"max=2000"`
}

// PlateUpdateRequest is the payload for a partial listing update. Absent
// fields are left untouched.
type PlateUpdateRequest struct {
	Number      *string  `json:"number" validate:"omitempty,max=20"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	RegionID    *uint    `json:"region_id"`
	CityID      *uint    `json:"city_id"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
}

// PlateController handles the listing endpoints using the repository pattern
type PlateController struct {
	repos *repository.Repositories
	geo   geolocation.CityResolver
}

// NewPlateController creates a new plate controller with its dependencies
func NewPlateController(repos *repository.Repositories, geo geolocation.CityResolver) *PlateController {
	return &PlateController{
		repos: repos,
		geo:   geo,
	}
}

// HandleTopPlates returns the currently promoted listings, best rating first.
func (pc *PlateController) HandleTopPlates(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "limit must not be negative")
	}
	regionID, ok := queryUintPtr(c, "region_id")
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "region_id must be numeric")
	}

	plates, err := pc.repos.Plate.GetTop(limit, regionID)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load top listings")
	}

	return c.JSON(plates)
}

// HandleGetPlate returns one listing with its seller summary. Every call
// increments the view counter before the response is written; the counter
// update is a single atomic SQL statement.
func (pc *PlateController) HandleGetPlate(c *fiber.Ctx) error {
	plateID, ok := paramUint(c, "plateID")
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "plate id must be numeric")
	}

	plate, err := pc.repos.Plate.GetByIDWithRelations(plateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "not_found", msgPlateNotFound)
		}
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load listing")
	}

	if err := pc.repos.Plate.IncrementViews(plate.ID); err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update view counter")
	}
	plate.ViewsCount++

	seller, err := pc.repos.User.GetSellerStats(plate.SellerID)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load seller summary")
	}

	// Price history is attached only for subscribers whose plan carries the
	// feature; everyone else gets an empty list.
	priceHistory := []models.PriceHistoryEntry{}
	userCtx := usercontext.GetUserContext(c)
	if userCtx.IsLoggedIn && subscriptions.HasFeature(subscriptions.NormalizePlan(userCtx.Plan), subscriptions.FeaturePriceHistory) {
		priceHistory, err = pc.repos.PriceHistory.GetByPlateID(plate.ID)
		if err != nil {
			return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load price history")
		}
	}

	return c.JSON(fiber.Map{
		"plate":         plate,
		"seller":        seller,
		"price_history": priceHistory,
	})
}

// HandleListPlates returns one filtered page of listings plus the total
// matching count. Filters that are absent from the query are not applied.
func (pc *PlateController) HandleListPlates(c *fiber.Ctx) error {
	skip, limit, ok := parsePagination(c)
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "skip and limit must not be negative")
	}

	var filter repository.PlateFilter
	if filter.PriceMin, ok = queryFloatPtr(c, "price_min"); !ok {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "price_min must be numeric")
	}
	if filter.PriceMax, ok = queryFloatPtr(c, "price_max"); !ok {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "price_max must be numeric")
	}
	if filter.RegionID, ok = queryUintPtr(c, "region"); !ok {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "region must be numeric")
	}
	// region=0 means "no region filter" in the public API; no real region
	// carries id 0.
	if filter.RegionID != nil && *filter.RegionID == 0 {
		filter.RegionID = nil
	}
	if filter.RatingMin, ok = queryIntPtr(c, "rating_min"); !ok {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "rating_min must be numeric")
	}

	// The city is resolved for analytics only. The lookup degrades to
	// "unknown" on failure and the response does not carry it.
	city := pc.geo.CityByIP(GetClientIP(c))
	if city != geolocation.UnknownCity {
		log.Printf("listing request from %s", city)
	}

	plates, total, err := pc.repos.Plate.List(filter, skip, limit)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load listings")
	}

	return c.JSON(fiber.Map{
		"data":  plates,
		"total": total,
	})
}

// HandleLikedPlates returns the listings the current user has liked.
func (pc *PlateController) HandleLikedPlates(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return errorResponse(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	skip, limit, ok := parsePagination(c)
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "skip and limit must not be negative")
	}

	plates, err := pc.repos.Plate.GetLikedByUser(userCtx.UserID, skip, limit)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load liked listings")
	}

	return c.JSON(plates)
}

// HandlePriceHistory returns the full price log of a listing. The
// subscription check deliberately precedes the existence check, so a user
// without the feature gets 403 even for an unknown plate id.
func (pc *PlateController) HandlePriceHistory(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return errorResponse(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	if !subscriptions.HasFeature(subscriptions.NormalizePlan(userCtx.Plan), subscriptions.FeaturePriceHistory) {
		return errorResponse(c, fiber.StatusForbidden, "forbidden", msgPriceHistoryPlans)
	}

	plateID, ok := paramUint(c, "plateID")
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "plate id must be numeric")
	}

	if _, err := pc.repos.Plate.GetByID(plateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "not_found", msgPlateNotFound)
		}
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load listing")
	}

	history, err := pc.repos.PriceHistory.GetByPlateID(plateID)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load price history")
	}

	return c.JSON(history)
}

// HandlePlatesByUser returns one page of the listings owned by the given
// user. No ownership check against the caller, the surface is public.
func (pc *PlateController) HandlePlatesByUser(c *fiber.Ctx) error {
	userID, ok := paramUint(c, "userID")
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "user id must be numeric")
	}

	skip, limit, ok := parsePagination(c)
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "skip and limit must not be negative")
	}

	plates, err := pc.repos.Plate.GetByUserID(userID, skip, limit)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load listings")
	}

	return c.JSON(plates)
}

// HandleCreatePlate creates a listing for the current user. A free-tier
// listing consumes one unit of the user's free-listing quota; the decrement
// is a guarded UPDATE so concurrent creates cannot overdraw the quota.
func (pc *PlateController) HandleCreatePlate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return errorResponse(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	pricingTier := c.Query("pricing_type")
	if pricingTier != models.PRICING_FREE && pricingTier != models.PRICING_PAID && pricingTier != models.PRICING_VIP {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "pricing_type must be one of free, paid, vip")
	}

	var req PlateCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	if pricingTier == models.PRICING_FREE {
		consumed, err := pc.repos.User.ConsumeFreeListing(userCtx.UserID)
		if err != nil {
			return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to check listing quota")
		}
		if !consumed {
			return errorResponse(c, fiber.StatusForbidden, "forbidden", msgNoFreeListings)
		}
	}

	// TODO: paid and vip were supposed to get a longer validity window, but
	// the original duration table resolves every tier to 30 days. Kept until
	// product confirms the intended values.
	validDays := map[string]int{
		models.PRICING_FREE: 30,
		models.PRICING_PAID: 30,
		models.PRICING_VIP:  30,
	}
	validUntil := time.Now().UTC().Add(time.Duration(validDays[pricingTier]) * 24 * time.Hour)

	plate := models.LicensePlate{
		Number:      req.Number,
		SellerID:    userCtx.UserID,
		RegionID:    req.RegionID,
		CityID:      req.CityID,
		Price:       req.Price,
		Description: req.Description,
		PricingTier: pricingTier,
		ValidUntil:  validUntil,
	}

	// Create also writes the first price history entry.
	if err := pc.repos.Plate.Create(&plate); err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create listing")
	}

	return c.Status(fiber.StatusCreated).JSON(plate)
}

// HandleUpdatePlate applies a partial update to a listing the current user
// owns. A price change appends a price history entry in the same
// transaction.
func (pc *PlateController) HandleUpdatePlate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return errorResponse(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	plateID, ok := paramUint(c, "plateID")
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "plate id must be numeric")
	}

	var req PlateUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	plate, err := pc.repos.Plate.GetByID(plateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "not_found", msgPlateNotFound)
		}
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load listing")
	}

	if !plate.IsOwnedBy(userCtx.UserID) {
		return errorResponse(c, fiber.StatusForbidden, "forbidden", msgNotYourListing)
	}

	update := repository.PlateUpdate{
		Number:      req.Number,
		Price:       req.Price,
		RegionID:    req.RegionID,
		CityID:      req.CityID,
		Description: req.Description,
	}
	if err := pc.repos.Plate.Update(plate, update); err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update listing")
	}

	return c.JSON(plate)
}

// HandleAddTopRating promotes a listing the current user owns for a number
// of days.
func (pc *PlateController) HandleAddTopRating(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return errorResponse(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	plateID, ok := paramUint(c, "plateID")
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "plate id must be numeric")
	}

	points := c.QueryInt("points", 0)
	if points < 1 || points > 100 {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "points must be between 1 and 100")
	}
	days := c.QueryInt("days", 30)
	if days < 1 || days > 365 {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "days must be between 1 and 365")
	}

	plate, err := pc.repos.Plate.GetByID(plateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "not_found", msgPlateNotFound)
		}
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load listing")
	}

	if !plate.IsOwnedBy(userCtx.UserID) {
		return errorResponse(c, fiber.StatusForbidden, "forbidden", msgNotYourTopRating)
	}

	rating := models.TopRating{
		PlateID:    plateID,
		Points:     points,
		ValidUntil: time.Now().UTC().Add(time.Duration(days) * 24 * time.Hour),
	}
	if err := pc.repos.TopRating.Create(&rating); err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create top rating")
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": msgTopRatingAdded,
	})
}

// HandleToggleLike flips the like state for (user, plate). Calling it twice
// restores the original state and count.
func (pc *PlateController) HandleToggleLike(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return errorResponse(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	plateID, ok := paramUint(c, "plateID")
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "plate id must be numeric")
	}

	liked, total, err := pc.repos.Like.Toggle(userCtx.UserID, plateID)
	if err != nil {
		if errors.Is(err, repository.ErrPlateNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "not_found", msgPlateNotFound)
		}
		// Any other collaborator failure surfaces as a generic client error.
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	message := msgLikeRemoved
	if liked {
		message = msgLikeSet
	}

	return c.JSON(fiber.Map{
		"status":      "success",
		"is_liked":    liked,
		"total_likes": total,
		"message":     message,
	})
}

// HandleLikeStatus returns the like state and count without mutating it.
func (pc *PlateController) HandleLikeStatus(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return errorResponse(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	plateID, ok := paramUint(c, "plateID")
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "bad_request", "plate id must be numeric")
	}

	liked, err := pc.repos.Like.IsLiked(userCtx.UserID, plateID)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load like status")
	}
	total, err := pc.repos.Like.CountForPlate(plateID)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load like count")
	}

	return c.JSON(fiber.Map{
		"is_liked":    liked,
		"total_likes": total,
	})
}
