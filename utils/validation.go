package utils

import "slices"

func IsValidValueOfConstant(value string, constantValues []string) bool {
	return slices.Contains(constantValues, value)
}
