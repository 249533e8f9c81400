package bordertax

// Add returns a+b. Overflow wraps around (two's complement).
func Add(a, b int32) int32 { return a + b }

// Multiply returns a*b. Overflow wraps around (two's complement).
func Multiply(a, b int32) int32 { return a * b }

// Greet returns "Hello, <name>!".
func Greet(name string) string { return "Hello, " + name + "!" }
