//go:build !race

package calendarx

func passwordHashCost() int {
	return 14
}
