package components

// Player tags the keyboard-driven sprite drawn on its own layer.
type Player struct {
	Speed  float32 // world units per second
	Size   float32
	Facing float32 // -1 left, +1 right
}

// Animation is a timer-driven sprite-sheet frame cycler.
type Animation struct {
	Frame     int
	Frames    int
	Timer     float32
	FrameTime float32 // seconds per frame
	Playing   bool
}
