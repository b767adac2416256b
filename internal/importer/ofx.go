package importer

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"

	"github.com/pulseledger/pulse/internal/model"
)

// OFXParser converts OFX/QFX bank statements into ledger transactions.
type OFXParser struct {
	// Account maps the statement onto a ledger account name. When
	// empty, the statement's own account ID is used.
	Account string
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// SGML-style OFX files sometimes drop the closing bracket on a tag
	// that ends a line.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// Parse reads an OFX/QFX file and returns ledger transactions. Credits
// become income, debits become expense; OFX uses negative amounts for
// debits, so the sign carries the direction and the magnitude becomes
// the transaction amount.
func (p *OFXParser) Parse(r io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var txns []model.Transaction

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		account := p.accountName(string(stmt.BankAcctFrom.AcctID))
		for _, ofxTxn := range stmt.BankTranList.Transactions {
			txns = append(txns, p.convert(ofxTxn, account))
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		account := p.accountName(string(stmt.CCAcctFrom.AcctID))
		for _, ofxTxn := range stmt.BankTranList.Transactions {
			txns = append(txns, p.convert(ofxTxn, account))
		}
	}

	return txns, nil
}

func (p *OFXParser) accountName(statementAccount string) string {
	if p.Account != "" {
		return p.Account
	}
	return statementAccount
}

func (p *OFXParser) convert(ofxTxn ofxgo.Transaction, account string) model.Transaction {
	amount, _ := ofxTxn.TrnAmt.Float64()
	txnType := model.TypeExpense
	if amount > 0 {
		txnType = model.TypeIncome
	}
	if amount < 0 {
		amount = -amount
	}

	id := string(ofxTxn.FiTID)
	if id == "" {
		id = uuid.NewString()
	}

	description := strings.TrimSpace(string(ofxTxn.Name))
	if ofxTxn.Payee != nil && ofxTxn.Payee.Name != "" {
		description = strings.TrimSpace(string(ofxTxn.Payee.Name))
	}
	if description == "" {
		description = strings.TrimSpace(string(ofxTxn.Memo))
	}

	return model.Transaction{
		ID:          id,
		Date:        ofxTxn.DtPosted.Time,
		Type:        txnType,
		Amount:      amount,
		Account:     account,
		Description: description,
		Notes:       strings.TrimSpace(string(ofxTxn.Memo)),
	}
}
