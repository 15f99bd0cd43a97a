package utils

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	XConn      *xgb.Conn
	XRoot      xproto.Window
	xWarned    bool
	xAvailable = true
)

func InitX11() error {
	var err error
	XConn, err = xgb.NewConn()
	if err != nil {
		return err
	}

	setup := xproto.Setup(XConn)
	XRoot = setup.DefaultScreen(XConn).Root
	return nil
}

// GlobalMousePosition queries the X root pointer. Unlike the window-local
// mouse position this keeps reporting while the game window is borderless
// fullscreen, which is what edge scrolling needs.
func GlobalMousePosition() (int, int, error) {
	if XConn == nil {
		if err := InitX11(); err != nil {
			return 0, 0, err
		}
	}

	reply, err := xproto.QueryPointer(XConn, XRoot).Reply()
	if err != nil {
		return 0, 0, err
	}

	return int(reply.RootX), int(reply.RootY), nil
}

// EdgeScroll maps a pointer position to an RTS camera pan direction.
// Components are in {-1, 0, 1}: nonzero when the pointer sits within
// margin pixels of the corresponding screen edge.
func EdgeScroll(mx, my, width, height, margin int) (dx, dy int) {
	if margin <= 0 {
		return 0, 0
	}
	if mx < margin {
		dx = -1
	} else if mx >= width-margin {
		dx = 1
	}
	if my < margin {
		dy = -1
	} else if my >= height-margin {
		dy = 1
	}
	return dx, dy
}

// GlobalEdgeScroll combines the X pointer query with EdgeScroll. When no X
// connection can be made (Wayland without XWayland, headless) it warns once
// and returns zero vectors from then on.
func GlobalEdgeScroll(width, height, margin int) (dx, dy int) {
	if !xAvailable {
		return 0, 0
	}
	mx, my, err := GlobalMousePosition()
	if err != nil {
		if !xWarned {
			Warn("Edge scrolling disabled, no X11 pointer: %v", err)
			xWarned = true
		}
		xAvailable = false
		return 0, 0
	}
	return EdgeScroll(mx, my, width, height, margin)
}
