package partnerwindow

import "testing"

func TestMouthStageClampsAtFour(t *testing.T) {
	cases := []struct{ updates, want int }{
		{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 4}, {100, 4},
	}
	for _, c := range cases {
		if got := mouthStage(c.updates); got != c.want {
			t.Errorf("mouthStage(%d) = %d, want %d", c.updates, got, c.want)
		}
	}
}

func TestLogoL8IsPanelSized(t *testing.T) {
	logo := logoL8()
	if len(logo) != logoSize*logoSize {
		t.Fatalf("len(logoL8()) = %d, want %d", len(logo), logoSize*logoSize)
	}
	center := logo[(logoSize/2)*logoSize+logoSize/2]
	if center == 0 {
		t.Error("logo centre pixel is zero, expected a lit radial gradient")
	}
}
