package bivec

import (
	"reflect"
	"testing"

	"github.com/unixpickle/serializer"
)

func TestTokenSet(t *testing.T) {
	set := NewTokenSet([]string{"</s>", "the", "cat"})
	if id := set.ID("cat"); id != 2 {
		t.Errorf("expected 2 but got %d", id)
	}
	if id := set.ID("dog"); id != -1 {
		t.Errorf("expected -1 but got %d", id)
	}
	if tok := set.Token(1); tok != "the" {
		t.Errorf("expected the but got %s", tok)
	}
	if tok := set.Token(3); tok != "" {
		t.Errorf("expected empty token but got %s", tok)
	}
	actual := set.IDs([]string{"the", "dog", "</s>"})
	expected := []int{1, -1, 0}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
}

func TestTokenSetSerialize(t *testing.T) {
	set := NewTokenSet([]string{"</s>", "the", "cat"})
	data, err := serializer.SerializeAny(set)
	if err != nil {
		t.Fatal(err)
	}
	var set1 *TokenSet
	if err := serializer.DeserializeAny(data, &set1); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(set, set1) {
		t.Errorf("expected %v but got %v", set, set1)
	}
}
