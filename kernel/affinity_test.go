package kernel

import (
	"reflect"
	"testing"
)

func TestCPUMaskCPUs(t *testing.T) {
	tests := []struct {
		mask CPUMask
		want []int
	}{
		{0, nil},
		{0b0000_0001, []int{0}},
		{0b0000_0101, []int{0, 2}},
		{0b1111_1111, []int{0, 1, 2, 3, 4, 5, 6, 7}},
	}
	for _, tt := range tests {
		got := tt.mask.CPUs()
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("CPUMask(%08b).CPUs() = %v, want %v", tt.mask, got, tt.want)
		}
	}
}

func TestCPUMaskEmpty(t *testing.T) {
	if !CPUMask(0).Empty() {
		t.Error("zero mask should be Empty")
	}
	if CPUMask(1).Empty() {
		t.Error("non-zero mask should not be Empty")
	}
}

func TestSetAffinityEmptyMaskIsNoop(t *testing.T) {
	if err := SetAffinity(0); err != nil {
		t.Errorf("SetAffinity(0) = %v, want nil", err)
	}
}
