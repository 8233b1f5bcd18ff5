package util

import (
	"fmt"
	"regexp"
)

var (
	vehicleNumberRe = regexp.MustCompile(`^[A-Za-z0-9-]{4,20}$`)
	mobileNumberRe  = regexp.MustCompile(`^[0-9+\-\s()]+$`)
	usernameRe      = regexp.MustCompile(`^[A-Za-z0-9_]{3,50}$`)
	hasDigitRe      = regexp.MustCompile(`\d`)
)

// ValidateVehicleNumber checks the registration plate format
// (4-20 chars, letters, numbers and hyphens only).
func ValidateVehicleNumber(n string) error {
	if !vehicleNumberRe.MatchString(n) {
		return fmt.Errorf("vehicle number must be 4-20 alphanumeric characters (hyphens allowed)")
	}
	return nil
}

// ValidateMobileNumber checks for digits and common phone punctuation.
func ValidateMobileNumber(n string) error {
	if n == "" || !mobileNumberRe.MatchString(n) {
		return fmt.Errorf("please provide a valid mobile number")
	}
	return nil
}

// ValidateUsername checks 3-50 chars of letters, numbers and underscores.
func ValidateUsername(u string) error {
	if !usernameRe.MatchString(u) {
		return fmt.Errorf("username must be 3-50 characters of letters, numbers and underscores")
	}
	return nil
}

// ValidatePassword enforces the minimum length and one-digit rule.
func ValidatePassword(p string) error {
	if len(p) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	if !hasDigitRe.MatchString(p) {
		return fmt.Errorf("password must contain at least one number")
	}
	return nil
}
