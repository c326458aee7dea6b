package plot

import "testing"

func TestDrawListRectAndFinalize(t *testing.T) {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	dl.AddRect(0, 0, 10, 10, ColorRed)
	dl.AddRect(0, 0, 10, 10, ColorTransparent)
	dl.Finalize()
	dl.Finalize()

	if len(dl.VtxBuffer) != 4 || len(dl.IdxBuffer) != 6 {
		t.Fatalf("got %d vertices / %d indices, want 4 / 6", len(dl.VtxBuffer), len(dl.IdxBuffer))
	}
	if len(dl.CmdBuffer) != 1 || dl.CmdBuffer[0].ElemCount != 6 {
		t.Fatalf("commands = %+v, want one command of 6 elements", dl.CmdBuffer)
	}
}

func TestDrawListTextSplitsByTexture(t *testing.T) {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	dl.AddRect(0, 0, 10, 10, ColorRed)
	dl.AddText(2, 2, "ab", ColorWhite, 2)
	dl.AddRect(20, 0, 10, 10, ColorRed)
	dl.Finalize()

	if len(dl.CmdBuffer) != 3 {
		t.Fatalf("got %d commands, want 3", len(dl.CmdBuffer))
	}
	wantTex := []uint32{0, FontTexture, 0}
	wantElems := []uint32{6, 12, 6}
	for i, cmd := range dl.CmdBuffer {
		if cmd.TextureID != wantTex[i] || cmd.ElemCount != wantElems[i] {
			t.Errorf("cmd %d = tex %d elems %d, want tex %d elems %d",
				i, cmd.TextureID, cmd.ElemCount, wantTex[i], wantElems[i])
		}
	}
	if len(dl.Texts) != 1 || dl.Texts[0].Text != "ab" || dl.Texts[0].Scale != 2 {
		t.Errorf("texts = %+v, want one run of \"ab\" at scale 2", dl.Texts)
	}
}

func TestDrawListClipRect(t *testing.T) {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	dl.PushClipRect(10, 10, 50, 50)
	dl.AddRect(0, 0, 100, 100, ColorRed)
	dl.PopClipRect()
	dl.AddRect(0, 0, 100, 100, ColorRed)
	dl.Finalize()

	if len(dl.CmdBuffer) != 2 {
		t.Fatalf("got %d commands, want 2", len(dl.CmdBuffer))
	}
	if dl.CmdBuffer[0].ClipRect != [4]float32{10, 10, 50, 50} {
		t.Errorf("first clip = %v", dl.CmdBuffer[0].ClipRect)
	}
	if dl.CmdBuffer[1].ClipRect[2] < 1e8 {
		t.Errorf("clip not restored: %v", dl.CmdBuffer[1].ClipRect)
	}
}

func TestDrawListSplitsOnIndexOverflow(t *testing.T) {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	// 20000 quads = 80000 vertices, more than one uint16 command can address.
	for i := 0; i < 20000; i++ {
		dl.AddRect(float32(i), 0, 1, 1, ColorRed)
	}
	dl.Finalize()

	if len(dl.CmdBuffer) < 2 {
		t.Fatalf("got %d commands, want a split", len(dl.CmdBuffer))
	}
	var elems uint32
	for _, cmd := range dl.CmdBuffer {
		elems += cmd.ElemCount
		n := 0
		dl.Triangles(cmd, func(a, b, c Vertex) { n++ })
		if uint32(n*3) != cmd.ElemCount {
			t.Errorf("Triangles visited %d triangles for %d elements", n, cmd.ElemCount)
		}
	}
	if elems != 20000*6 {
		t.Errorf("total elements = %d, want %d", elems, 20000*6)
	}
}

func TestDrawListClearKeepsCapacity(t *testing.T) {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	dl.AddText(0, 0, "hello", ColorWhite, 1)
	dl.Finalize()
	if dl.Empty() {
		t.Fatal("list with text reports empty")
	}
	dl.Clear()
	if !dl.Empty() || len(dl.CmdBuffer) != 0 || len(dl.Texts) != 0 {
		t.Error("Clear left data behind")
	}
}

func TestMeasureText(t *testing.T) {
	got := MeasureText("12.5", 2)
	if got != (Vec2{X: 64, Y: 16}) {
		t.Errorf("MeasureText = %v, want (64, 16)", got)
	}
}

func TestFontAtlas(t *testing.T) {
	w, h, alpha := FontAtlas()
	if w != 128 || h != 48 || len(alpha) != w*h {
		t.Fatalf("atlas %dx%d with %d bytes", w, h, len(alpha))
	}
	lit := 0
	for _, a := range alpha {
		if a != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("atlas is blank")
	}
}
