package main

import (
	"github.com/CorrelAid/student_payment_form/cmd"
)

func main() {
	cmd.Execute()
}
