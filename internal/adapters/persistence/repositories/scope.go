package repositories

import "gorm.io/gorm"

// tenantScope filters a query to one organization. A zero orgID
// means no filter; callers only pass zero for super-admin actors.
func tenantScope(orgID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if orgID == 0 {
			return db
		}
		return db.Where("organization_id = ?", orgID)
	}
}
