// Command fitrack is a terminal client for the fitness-tracking backend:
// diary, workouts, weight and water logging, goals, and a dashboard.
package main

func main() {
	Execute()
}
