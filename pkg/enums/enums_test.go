package enums

import "testing"

func TestParseSaleType(t *testing.T) {
	for _, value := range []string{"New", "Used", "Trade-In"} {
		parsed, err := ParseSaleType(value)
		if err != nil {
			t.Fatalf("expected %q to parse: %v", value, err)
		}
		if parsed.String() != value {
			t.Fatalf("round trip mismatch for %q", value)
		}
	}
	if _, err := ParseSaleType("new"); err == nil {
		t.Fatal("sale types are case sensitive; lowercase should fail")
	}
	if SaleType("Lease").IsValid() {
		t.Fatal("unknown sale type should not validate")
	}
}

func TestSharedStatusTerminality(t *testing.T) {
	if SharedStatusPending.IsTerminal() {
		t.Fatal("pending must not be terminal")
	}
	if !SharedStatusAccepted.IsTerminal() || !SharedStatusRejected.IsTerminal() {
		t.Fatal("accepted and rejected are terminal")
	}
	if _, err := ParseSharedStatus("withdrawn"); err == nil {
		t.Fatal("unknown shared status should fail to parse")
	}
}

func TestApprovalKindAndStatus(t *testing.T) {
	if _, err := ParseApprovalKind("sale"); err != nil {
		t.Fatalf("sale kind should parse: %v", err)
	}
	if _, err := ParseApprovalKind("tradein"); err == nil {
		t.Fatal("trade-ins do not go through payroll approvals")
	}
	if !ApprovalStatusPending.IsValid() {
		t.Fatal("pending approval status should validate")
	}
}

func TestUserRoleCanManage(t *testing.T) {
	if UserRoleSalesperson.CanManage() {
		t.Fatal("salesperson must not carry manager privileges")
	}
	if !UserRoleManager.CanManage() || !UserRoleAdmin.CanManage() {
		t.Fatal("manager and admin carry manager privileges")
	}
}
