package partnerwindow

import "testing"

func newTestWorker() *worker {
	cmds := make(chan command)
	return newWorker(Config{Enabled: true, Font: 31, IdleEnabled: true}, cmds, &snapshot{})
}

func TestIdleWakeTransitionStages(t *testing.T) {
	w := newTestWorker()
	w.showingIdle = true

	wantStages := []int{1, 2, 3, 4}
	for i, want := range wantStages {
		w.onUpdateText("a")
		if w.faceStage != want {
			t.Fatalf("update %d: faceStage = %d, want %d", i+1, w.faceStage, want)
		}
		if want < 4 {
			if !w.faceTransition {
				t.Fatalf("update %d: transition ended early", i+1)
			}
			if w.lastText != "" {
				t.Fatalf("update %d: lastText = %q, want empty mid-transition", i+1, w.lastText)
			}
			if !w.showingIdle {
				t.Fatalf("update %d: showingIdle cleared before stage 4", i+1)
			}
		}
	}
	if w.faceTransition {
		t.Error("transition still active after stage 4")
	}
	if w.showingIdle {
		t.Error("showingIdle still set after stage 4")
	}
	if w.lastText != "a" {
		t.Errorf("lastText = %q, want \"a\" accepted at stage 4", w.lastText)
	}
}

func TestUpdateTextOutsideIdleAcceptsImmediately(t *testing.T) {
	w := newTestWorker()
	w.onUpdateText("hello")
	if w.lastText != "hello" {
		t.Errorf("lastText = %q, want %q", w.lastText, "hello")
	}
	if w.faceTransition {
		t.Error("faceTransition set without ever being idle")
	}
}

func TestSetEnabledFalseTearsDownWithNoDriver(t *testing.T) {
	w := newTestWorker()
	if !w.apply(setEnabledCmd{enabled: false}) {
		t.Fatal("apply(setEnabledCmd) should not request exit")
	}
	if w.enabled {
		t.Error("enabled still true after SetEnabled(false)")
	}
}

func TestShutdownCommandRequestsExit(t *testing.T) {
	w := newTestWorker()
	if w.apply(shutdownCmd{}) {
		t.Fatal("apply(shutdownCmd) should request exit")
	}
}
