package dice

// Scripted is a Source that replays fixed die faces, wrapping around when the
// script runs out. A face larger than the die being rolled is capped to it.
type Scripted struct {
	faces []int
	next  int
}

// NewScripted returns a Source replaying faces in order.
func NewScripted(faces ...int) *Scripted {
	if len(faces) == 0 {
		faces = []int{1}
	}
	return &Scripted{faces: faces}
}

// Fixed returns an engine on which every die shows face.
func Fixed(face int) *Engine {
	return NewEngine(NewScripted(face))
}

func (s *Scripted) Intn(n int) int {
	face := s.faces[s.next%len(s.faces)]
	s.next++

	if face > n {
		face = n
	}
	if face < 1 {
		face = 1
	}
	return face - 1
}

// Consumed reports how many faces have been drawn.
func (s *Scripted) Consumed() int {
	return s.next
}
