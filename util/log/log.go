// Package log wraps the standard logger. Development builds write to stderr
// with debug output; release builds write to a rotating file and drop debug
// output.
package log

import (
	"fmt"
	"log"
	"os"
)

// calldepth skips the wrapper so Lshortfile reports the caller.
const calldepth = 3

func output(s string) {
	_ = log.Output(calldepth, s)
}

// Print calls the standard log.Print()
func Print(v ...interface{}) {
	output(fmt.Sprint(v...))
}

// Printf calls the standard log.Printf()
func Printf(format string, v ...interface{}) {
	output(fmt.Sprintf(format, v...))
}

// Println calls the standard log.Println()
func Println(v ...interface{}) {
	output(fmt.Sprintln(v...))
}

// Fatal logs and exits with status 1.
func Fatal(v ...interface{}) {
	output(fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf logs and exits with status 1.
func Fatalf(format string, v ...interface{}) {
	output(fmt.Sprintf(format, v...))
	os.Exit(1)
}

// Fatalln logs and exits with status 1.
func Fatalln(v ...interface{}) {
	output(fmt.Sprintln(v...))
	os.Exit(1)
}
