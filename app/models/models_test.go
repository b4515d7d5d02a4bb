package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"
)

func TestCartRemoveItem(t *testing.T) {
	cart := Cart{Items: []CartItem{}}
	cart.Items = append(cart.Items,
		CartItem{ProductID: 1},
		CartItem{ProductID: 2},
		CartItem{ProductID: 3},
	)
	cart.Items[0].ID = 10
	cart.Items[1].ID = 11
	cart.Items[2].ID = 12

	if !cart.RemoveItem(11) {
		t.Fatal("expected removal of existing item")
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(cart.Items))
	}
	if cart.Items[0].ID != 10 || cart.Items[1].ID != 12 {
		t.Errorf("unexpected items after removal: %+v", cart.Items)
	}

	if cart.RemoveItem(99) {
		t.Error("removing an unknown id must report false")
	}
}

func TestUserRoles(t *testing.T) {
	u := User{Roles: "user,admin"}
	if !u.HasRole(RoleAdmin) || !u.HasRole(RoleUser) {
		t.Error("expected both roles present")
	}
	if u.HasRole("superhero") {
		t.Error("unexpected role")
	}

	u.SetRoles([]string{"admin", "bogus", "admin", " user "})
	want := []string{RoleAdmin, RoleUser}
	if !reflect.DeepEqual(u.RoleList(), want) {
		t.Errorf("RoleList() = %v, want %v", u.RoleList(), want)
	}

	u.SetRoles(nil)
	if u.Roles != "" || u.RoleList() != nil {
		t.Errorf("empty role set should serialize to empty string, got %q", u.Roles)
	}
}

func TestProductAttachImage(t *testing.T) {
	p := Product{}
	p.AttachImage(Image{Name: "file1"})
	p.AttachImage(Image{Name: "file2"})
	if len(p.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(p.Images))
	}
	if p.Images[0].Name != "file1" {
		t.Errorf("images must keep arrival order, got %q first", p.Images[0].Name)
	}
}

func TestOrderJSONOmitsUnloadedProduct(t *testing.T) {
	order := Order{UserID: 1, ProductID: 2, Quantity: 3}

	data, err := json.Marshal(order)
	if err != nil {
		t.Fatalf("marshal order: %v", err)
	}
	if bytes.Contains(data, []byte(`"product"`)) {
		t.Errorf("unloaded product association must not serialise, got %s", data)
	}

	order.Product = &Product{Title: "Mug"}
	data, err = json.Marshal(order)
	if err != nil {
		t.Fatalf("marshal order with product: %v", err)
	}
	if !bytes.Contains(data, []byte(`"Mug"`)) {
		t.Errorf("loaded product association must serialise, got %s", data)
	}
}
