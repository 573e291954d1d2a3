// Spoken and printed alert strings. Keep lines short and direct.
package speech

import "fmt"

// LineStep is what the narrator says when the cook lands on a step.
func LineStep(number int, instruction string) string {
	return fmt.Sprintf("Step %d. %s", number, instruction)
}

// LineTimerDone announces a finished timer.
func LineTimerDone(name string) string {
	return fmt.Sprintf("[Timer] %s is up.", name)
}

func LineCookingStart(recipeName string, steps int) string {
	if steps == 1 {
		return fmt.Sprintf("Cooking %s. One step.", recipeName)
	}
	return fmt.Sprintf("Cooking %s. %d steps.", recipeName, steps)
}

func LineSessionDone() string {
	return "That was the last step. You're done."
}

func LineNoInstructions(recipeName string) string {
	return fmt.Sprintf("%s has no instructions available.", recipeName)
}

func LineExited() string {
	return "Session closed."
}
