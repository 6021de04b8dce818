package render

import (
	"reflect"
	"testing"
)

func TestWindowHintsStateAtoms(t *testing.T) {
	tests := []struct {
		name  string
		hints WindowHints
		want  []string
	}{
		{"none", WindowHints{}, nil},
		{"taskbar", WindowHints{SkipTaskbar: true}, []string{"_NET_WM_STATE_SKIP_TASKBAR"}},
		{
			name:  "wallpaper",
			hints: WindowHints{SkipTaskbar: true, SkipPager: true, Below: true, Sticky: true},
			want: []string{
				"_NET_WM_STATE_SKIP_TASKBAR",
				"_NET_WM_STATE_SKIP_PAGER",
				"_NET_WM_STATE_BELOW",
				"_NET_WM_STATE_STICKY",
			},
		},
		{"below only", WindowHints{Below: true}, []string{"_NET_WM_STATE_BELOW"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hints.StateAtoms(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("StateAtoms() = %v, want %v", got, tt.want)
			}
			if got := tt.hints.Any(); got != (len(tt.want) > 0) {
				t.Errorf("Any() = %v", got)
			}
		})
	}
}

func TestApplyBackgroundHintsWithoutHints(t *testing.T) {
	if err := ApplyBackgroundHints(WindowHints{}); err != nil {
		t.Errorf("ApplyBackgroundHints(none) = %v, want nil", err)
	}
}

func TestCompositorStatusString(t *testing.T) {
	tests := []struct {
		status CompositorStatus
		want   string
	}{
		{CompositorUnknown, "unknown"},
		{CompositorActive, "active"},
		{CompositorInactive, "inactive"},
		{CompositorStatus(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("CompositorStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestTransparencyWarning(t *testing.T) {
	if got := transparencyWarning(CompositorActive); got != "" {
		t.Errorf("active compositor warned: %q", got)
	}
	for _, s := range []CompositorStatus{CompositorInactive, CompositorUnknown} {
		if transparencyWarning(s) == "" {
			t.Errorf("no warning for %v", s)
		}
	}
	if got := CheckTransparencySupport(false); got != "" {
		t.Errorf("CheckTransparencySupport(false) = %q, want empty", got)
	}
}
