package models

import (
	"encoding/json"
	"testing"
)

func TestPost_UnmarshalNormalizesID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain id", `{"id":"p1","title":"a"}`, "p1"},
		{"mongo _id", `{"_id":"p2","title":"b"}`, "p2"},
		{"both prefers id", `{"id":"p3","_id":"other","title":"c"}`, "p3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p Post
			if err := json.Unmarshal([]byte(tc.in), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if p.ID != tc.want {
				t.Errorf("ID = %q; want %q", p.ID, tc.want)
			}
		})
	}
}

func TestAllRecords_AcceptAltID(t *testing.T) {
	raw := []byte(`{"_id":"x1"}`)

	var u User
	var c Course
	var l Learn
	var e Event
	var r Review
	var cm Comment
	for _, v := range []any{&u, &c, &l, &e, &r, &cm} {
		if err := json.Unmarshal(raw, v); err != nil {
			t.Fatalf("unmarshal %T: %v", v, err)
		}
	}
	for _, id := range []string{u.ID, c.ID, l.ID, e.ID, r.ID, cm.ID} {
		if id != "x1" {
			t.Errorf("ID = %q; want normalized from _id", id)
		}
	}
}

func TestUser_FieldsDecode(t *testing.T) {
	raw := []byte(`{"_id":"u1","username":"ada","email":"a@b.c","isAdmin":true,"token":"tok"}`)
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.ID != "u1" || u.Username != "ada" || !u.IsAdmin || u.Token != "tok" {
		t.Errorf("unexpected user: %+v", u)
	}
}
