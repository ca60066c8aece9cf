package engo

import "testing"

func TestHUDSystem_SetLines(t *testing.T) {
	hud := NewHUDSystem()
	lines := []string{"GEAR 1", "NITRO --"}

	hud.SetLines(lines)
	if !hud.dirty {
		t.Fatal("new lines should mark the HUD dirty")
	}
	if got := hud.Text(); got != "GEAR 1\nNITRO --" {
		t.Errorf("Text() = %q", got)
	}

	// Without a text entity Update leaves the change pending.
	hud.Update(1.0 / 60)
	if !hud.dirty {
		t.Error("Update without a text entity cleared the pending change")
	}

	hud.dirty = false
	lines[0] = "GEAR 2"
	if hud.Text() != "GEAR 1\nNITRO --" {
		t.Error("SetLines must copy its input")
	}
	hud.SetLines([]string{"GEAR 1", "NITRO --"})
	if hud.dirty {
		t.Error("identical lines should not mark the HUD dirty")
	}
}
