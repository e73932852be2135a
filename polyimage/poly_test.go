package polyimage

import "testing"

func TestNewInitialValue(t *testing.T) {
	phi := New(1)
	if phi.Order() != 3 {
		t.Errorf("order: want 3, got %d", phi.Order())
	}
	if phi.WindowSize() != 13 {
		t.Errorf("window size: want 13, got %d", phi.WindowSize())
	}
	if phi.Size() != 0 {
		t.Errorf("size: want 0, got %d", phi.Size())
	}
}

func TestNewBadDownsample(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("did not panic")
		}
	}()
	New(0)
}

func TestNumDimensions(t *testing.T) {
	cases := []struct{ order, want int }{
		{1, 2}, {2, 5}, {3, 9}, {4, 14}, {5, 20}, {6, 27},
	}
	phi := New(1)
	for _, q := range cases {
		if err := phi.Setup(q.order, 13); err != nil {
			t.Fatal(err)
		}
		if got := phi.NumDimensions(); got != q.want {
			t.Errorf("order %d: want %d dimensions, got %d", q.order, q.want, got)
		}
	}
}

func TestSetupRejectsBadConfiguration(t *testing.T) {
	cases := []struct{ order, window int }{
		{0, 13}, {7, 13}, {-1, 13},
		{3, 2}, {3, 1}, {3, 12}, {3, 0},
	}
	for _, q := range cases {
		phi := New(1)
		if err := phi.Setup(2, 7); err != nil {
			t.Fatal(err)
		}
		phi.Load(randImage(20, 20))
		if err := phi.Setup(q.order, q.window); err == nil {
			t.Errorf("setup(%d, %d): no error", q.order, q.window)
			continue
		}
		// Previous state intact after a rejected setup.
		if phi.Order() != 2 || phi.WindowSize() != 7 {
			t.Errorf(
				"setup(%d, %d): configuration modified: order %d, window %d",
				q.order, q.window, phi.Order(), phi.WindowSize(),
			)
		}
		if phi.Size() == 0 {
			t.Errorf("setup(%d, %d): loaded grid dropped", q.order, q.window)
		}
	}
}

func TestSetupDropsLoadedGrid(t *testing.T) {
	phi := New(1)
	phi.Load(randImage(20, 20))
	if phi.Size() == 0 {
		t.Fatal("nothing loaded")
	}
	if err := phi.Setup(1, 5); err != nil {
		t.Fatal(err)
	}
	if phi.Size() != 0 {
		t.Errorf("size after setup: want 0, got %d", phi.Size())
	}
}

func TestClearRestoresDefaults(t *testing.T) {
	phi := New(1)
	if err := phi.Setup(1, 5); err != nil {
		t.Fatal(err)
	}
	phi.Load(randImage(20, 20))
	phi.Clear()
	if phi.Order() != 3 || phi.WindowSize() != 13 {
		t.Errorf("want order 3 window 13, got order %d window %d", phi.Order(), phi.WindowSize())
	}
	if phi.Size() != 0 {
		t.Errorf("size: want 0, got %d", phi.Size())
	}
}

func TestUnloadReloadIdempotent(t *testing.T) {
	im := randImage(24, 31)
	a, b := New(2), New(2)
	a.Load(im)
	b.Load(im)
	b.Unload()
	if b.Nr() != 0 || b.Nc() != 0 {
		t.Fatalf("after unload: nr %d, nc %d", b.Nr(), b.Nc())
	}
	b.Load(im)
	testGridEq(t, a, b)
}

func TestCopyConfiguration(t *testing.T) {
	im := randImage(32, 27)
	h1 := New(2)
	if err := h1.Setup(2, 9); err != nil {
		t.Fatal(err)
	}
	h2 := New(2)
	h2.CopyConfiguration(h1)
	if h2.Order() != h1.Order() || h2.WindowSize() != h1.WindowSize() {
		t.Fatalf(
			"configuration differs: order %d/%d, window %d/%d",
			h1.Order(), h2.Order(), h1.WindowSize(), h2.WindowSize(),
		)
	}
	h1.Load(im)
	h2.Load(im)
	testGridEq(t, h1, h2)
}

func TestCopyConfigurationOwnsFilters(t *testing.T) {
	im := randImage(20, 20)
	src := New(1)
	want := New(1)
	want.CopyConfiguration(src)
	dst := New(1)
	dst.CopyConfiguration(src)
	// Corrupting the copy must not leak back into the source.
	for _, f := range dst.filters {
		for i := range f.Elems {
			f.Elems[i] = 0
		}
	}
	src.Load(im)
	want.Load(im)
	testGridEq(t, want, src)
}

func TestCopyConfigurationKeepsLoadedState(t *testing.T) {
	im := randImage(30, 30)
	src := New(1)
	if err := src.Setup(3, 13); err != nil {
		t.Fatal(err)
	}
	dst := New(1)
	if err := dst.Setup(3, 9); err != nil {
		t.Fatal(err)
	}
	dst.Load(im)
	nr, nc := dst.Nr(), dst.Nc()
	dst.CopyConfiguration(src)
	if dst.Nr() != nr || dst.Nc() != nc {
		t.Errorf("grid dims changed: want %dx%d, got %dx%d", nr, nc, dst.Nr(), dst.Nc())
	}
}

func TestAtPanicsOutsideGrid(t *testing.T) {
	phi := New(1)
	phi.Load(randImage(20, 20))
	cases := []struct{ row, col int }{
		{-1, 0}, {0, -1}, {phi.Nr(), 0}, {0, phi.Nc()},
	}
	for _, q := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("at (%d, %d): did not panic", q.row, q.col)
				}
			}()
			phi.At(q.row, q.col)
		}()
	}
}

func TestAtPanicsWhenNotLoaded(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("did not panic")
		}
	}()
	New(1).At(0, 0)
}
