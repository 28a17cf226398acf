package db

import "gorm.io/gorm"

// findOne loads the first row of query into dest, reporting absence as found=false.
func findOne(query *gorm.DB, dest any) (bool, error) {
	result := query.Limit(1).Find(dest)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
