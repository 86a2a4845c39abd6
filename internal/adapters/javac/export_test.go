package javac

// SetBinaryForTest points the compiler at a stand-in executable.
func (c *Compiler) SetBinaryForTest(path string) {
	c.binary = path
}
