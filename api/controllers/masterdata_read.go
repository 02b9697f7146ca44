package controllers

import (
	"net/http"

	"github.com/aarshhmi/luminique-admin-backend/internal/masterdata"
	"github.com/aarshhmi/luminique-admin-backend/pkg/logger"
)

// Read-side master-data handlers. Tags and badges are flat lookup lists
// without a detail view.

func ListMetalTypes(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc.ListMetalTypes, logg)
}

func GetMetalType(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return getHandler(svc.GetMetalType, logg)
}

func DeleteMetalType(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteHandler(svc.DeleteMetalType, logg)
}

func ListMetalColors(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc.ListMetalColors, logg)
}

func GetMetalColor(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return getHandler(svc.GetMetalColor, logg)
}

func DeleteMetalColor(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteHandler(svc.DeleteMetalColor, logg)
}

func ListMetalPurities(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc.ListMetalPurities, logg)
}

func GetMetalPurity(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return getHandler(svc.GetMetalPurity, logg)
}

func DeleteMetalPurity(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteHandler(svc.DeleteMetalPurity, logg)
}

func ListGemstoneTypes(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc.ListGemstoneTypes, logg)
}

func GetGemstoneType(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return getHandler(svc.GetGemstoneType, logg)
}

func DeleteGemstoneType(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteHandler(svc.DeleteGemstoneType, logg)
}

func ListDiamondClarityColors(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc.ListDiamondClarityColors, logg)
}

func GetDiamondClarityColor(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return getHandler(svc.GetDiamondClarityColor, logg)
}

func DeleteDiamondClarityColor(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteHandler(svc.DeleteDiamondClarityColor, logg)
}

func ListCategories(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc.ListCategories, logg)
}

func GetCategory(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return getHandler(svc.GetCategory, logg)
}

func DeleteCategory(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteHandler(svc.DeleteCategory, logg)
}

func ListTags(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc.ListTags, logg)
}

func DeleteTag(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteHandler(svc.DeleteTag, logg)
}

func ListBadges(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc.ListBadges, logg)
}

func DeleteBadge(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteHandler(svc.DeleteBadge, logg)
}
