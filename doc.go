// Package cadence implements an FSRS-5 spaced repetition scheduling engine.
//
// cadence computes, for a single flashcard, the next review date and the
// updated memory state (stability, difficulty) from the card's history and
// a recall rating. It performs no I/O: callers own persistence of the
// returned Card and ReviewLog values.
//
// Basic usage:
//
//	s, err := cadence.NewScheduler(cadence.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	now := time.Now()
//	card := cadence.NewCard("card-1", now)
//	card, rlog, err := s.ReviewCard(card, cadence.Good, now)
//
// PreviewCard projects all four ratings without committing anything, which
// is what a study screen shows on its answer buttons.
package cadence
