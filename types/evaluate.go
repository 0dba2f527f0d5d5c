package types

import (
	"fmt"

	"github.com/flowlang/inspect/ast"
	"github.com/flowlang/inspect/inspecterr"
	"github.com/flowlang/inspect/token"
)

// Source is the minimal view of a NodeIdMap.Collection this package needs.
type Source interface {
	XorNode(id uint32) (ast.XorNode, bool)
	ChildIDs(id uint32) []uint32
	ChildXorNode(parentID uint32, attributeIndex uint32) (ast.XorNode, bool)
}

// Evaluate infers the Type of n, memoizing every node visited along the
// way in a fresh per-call cache (spec.md §4.4: "memoized via a per-call
// nodeId → Type cache to cut exponential blow-up on shared subtrees").
func Evaluate(source Source, n ast.XorNode) (Type, error) {
	e := &evaluator{source: source, memo: make(map[uint32]Type)}
	return e.eval(n)
}

type evaluator struct {
	source Source
	memo   map[uint32]Type
}

func (e *evaluator) eval(n ast.XorNode) (Type, error) {
	if t, ok := e.memo[n.ID()]; ok {
		return t, nil
	}
	t, err := e.evalUncached(n)
	if err != nil {
		return Type{}, err
	}
	e.memo[n.ID()] = t
	return t, nil
}

func (e *evaluator) evalUncached(n ast.XorNode) (Type, error) {
	a, isAst := n.Ast()
	if !isAst {
		return UnknownType, nil
	}

	switch a.NodeKind {
	case ast.LiteralExpression:
		return evalLiteral(a), nil
	case ast.Constant:
		return evalConstant(a), nil
	case ast.ArithmeticExpression, ast.EqualityExpression, ast.LogicalExpression, ast.RelationalExpression:
		return e.evalBinary(n)
	case ast.IsExpression, ast.AsExpression:
		return e.evalTypeSideOf(n, ast.AsExpressionTypeIndex)
	case ast.AsNullablePrimitiveType:
		return e.evalTypeSideOf(n, ast.AsNullablePrimitiveTypeTypeIndex)
	case ast.IfExpression:
		return e.evalIf(n)
	case ast.EachExpression:
		return e.evalEach(n)
	case ast.FunctionExpression:
		return e.evalFunction(n)
	case ast.ListExpression, ast.ListLiteral:
		return e.evalList(n)
	case ast.RecordExpression, ast.RecordLiteral:
		return e.evalRecord(n)
	case ast.FieldSelector:
		return e.evalFieldSelector(n)
	case ast.FieldProjection:
		return e.evalFieldProjection(n)
	case ast.ErrorHandlingExpression:
		return e.evalErrorHandling(n)
	case ast.ErrorRaisingExpression:
		return Primitive(Any, true), nil
	case ast.UnaryExpression:
		return e.evalUnary(n)
	case ast.InvokeExpression:
		return e.evalInvoke(n)
	default:
		return UnknownType, nil
	}
}

func evalLiteral(a *ast.AstNode) Type {
	switch a.LiteralKind {
	case ast.LiteralLogical:
		return Primitive(Logical, false)
	case ast.LiteralNull:
		return Primitive(Null, true)
	case ast.LiteralNumeric:
		return Primitive(Number, false)
	case ast.LiteralText:
		return Primitive(Text, false)
	case ast.LiteralRecord:
		return Primitive(Record, false)
	case ast.LiteralList:
		return Primitive(List, false)
	default:
		return UnknownType
	}
}

func evalConstant(a *ast.AstNode) Type {
	if a.ConstantKind != ast.ConstantPrimitiveType {
		return UnknownType
	}
	k := primitiveKindOf(a.PrimitiveTypeKind)
	return Primitive(k, k == Null || k == Any)
}

func primitiveKindOf(p ast.PrimitiveTypeKind) Kind {
	switch p {
	case ast.PrimitiveAny:
		return Any
	case ast.PrimitiveAnyNonNull:
		return AnyNonNull
	case ast.PrimitiveBinary:
		return Binary
	case ast.PrimitiveDate:
		return Date
	case ast.PrimitiveDateTime:
		return DateTime
	case ast.PrimitiveDateTimeZone:
		return DateTimeZone
	case ast.PrimitiveDuration:
		return Duration
	case ast.PrimitiveFunction:
		return Function
	case ast.PrimitiveList:
		return List
	case ast.PrimitiveLogical:
		return Logical
	case ast.PrimitiveNone:
		return None
	case ast.PrimitiveNull:
		return Null
	case ast.PrimitiveNumber:
		return Number
	case ast.PrimitiveRecord:
		return Record
	case ast.PrimitiveTable:
		return Table
	case ast.PrimitiveText:
		return Text
	case ast.PrimitiveTime:
		return Time
	case ast.PrimitiveType:
		return TypeValue
	default:
		return Unknown
	}
}

func (e *evaluator) evalBinary(n ast.XorNode) (Type, error) {
	left, ok := e.source.ChildXorNode(n.ID(), ast.BinaryExpressionLeftIndex)
	if !ok {
		return Type{}, inspecterr.Malformed(token.Position{}, "binary expression %d missing left operand", n.ID())
	}
	opNode, ok := e.source.ChildXorNode(n.ID(), ast.BinaryExpressionOperatorIndex)
	if !ok {
		return Type{}, inspecterr.Malformed(token.Position{}, "binary expression %d missing operator", n.ID())
	}
	opLit := ""
	if oa, isAst := opNode.Ast(); isAst {
		opLit = oa.OperatorLiteral
	}
	op := operatorFromLiteral(opLit)
	if op == OpUnknown {
		return Type{}, inspecterr.New(inspecterr.UnknownOperator, token.Position{}, fmt.Sprintf("unrecognized operator spelling %q", opLit), nil)
	}

	leftType, err := e.eval(left)
	if err != nil {
		return Type{}, err
	}

	right, hasRight := e.source.ChildXorNode(n.ID(), ast.BinaryExpressionRightIndex)
	if !hasRight || right.IsContext() {
		return partialBinOp(leftType, op), nil
	}
	rightType, err := e.eval(right)
	if err != nil {
		return Type{}, err
	}
	return fullBinOp(leftType, op, rightType), nil
}

func fullBinOp(left Type, op Operator, right Type) Type {
	resultKind, ok := BinOpLookup[BinOpKey{Left: left.Kind, Op: op, Right: right.Kind}]
	if !ok {
		return Primitive(None, false)
	}
	if op == OpAmpersand && (resultKind == Record || resultKind == Table) {
		return Merge(left, right)
	}
	return Primitive(resultKind, left.IsNullable || right.IsNullable)
}

func partialBinOp(left Type, op Operator) Type {
	results, ok := BinOpPartialLookup[BinOpPartialKey{Left: left.Kind, Op: op}]
	if !ok || len(results) == 0 {
		return Primitive(None, false)
	}
	if len(results) == 1 {
		return Primitive(results[0], true)
	}
	members := make([]Type, len(results))
	for i, k := range results {
		members[i] = Primitive(k, true)
	}
	return AnyUnion(members...)
}

// evalTypeSideOf evaluates the type-side child of an Is/As expression or
// an AsNullablePrimitiveType annotation: the whole node's type is simply
// that of the type it names, not a binary-operator dispatch (spec.md §4.4
// lists AsExpression in both rows; the type-side-child rule is the one
// applied here since `is`/`as` name a type rather than combine two
// values — see DESIGN.md).
func (e *evaluator) evalTypeSideOf(n ast.XorNode, typeIndex uint32) (Type, error) {
	typeNode, ok := e.source.ChildXorNode(n.ID(), typeIndex)
	if !ok {
		return UnknownType, nil
	}
	return e.eval(typeNode)
}

func (e *evaluator) evalIf(n ast.XorNode) (Type, error) {
	cond, ok := e.source.ChildXorNode(n.ID(), ast.IfExpressionConditionIndex)
	if !ok {
		return Type{}, inspecterr.Malformed(token.Position{}, "if expression %d missing condition", n.ID())
	}
	condType, err := e.eval(cond)
	if err != nil {
		return Type{}, err
	}
	if condType.Kind != Logical && condType.Kind != Any {
		return Primitive(None, false), nil
	}

	thenNode, hasThen := e.source.ChildXorNode(n.ID(), ast.IfExpressionThenIndex)
	elseNode, hasElse := e.source.ChildXorNode(n.ID(), ast.IfExpressionElseIndex)
	var thenType, elseType Type
	if hasThen {
		thenType, err = e.eval(thenNode)
		if err != nil {
			return Type{}, err
		}
	} else {
		thenType = UnknownType
	}
	if hasElse {
		elseType, err = e.eval(elseNode)
		if err != nil {
			return Type{}, err
		}
	} else {
		elseType = UnknownType
	}

	if thenType.Kind == Unknown || thenType.Kind == Any {
		return elseType, nil
	}
	if elseType.Kind == Unknown || elseType.Kind == Any {
		return thenType, nil
	}
	return AnyUnion(thenType, elseType), nil
}

func (e *evaluator) evalEach(n ast.XorNode) (Type, error) {
	body, ok := e.source.ChildXorNode(n.ID(), ast.EachExpressionBodyIndex)
	if !ok {
		return UnknownType, nil
	}
	return e.eval(body)
}

func (e *evaluator) evalFunction(n ast.XorNode) (Type, error) {
	body, ok := e.source.ChildXorNode(n.ID(), ast.FunctionExpressionBodyIndex)
	if !ok {
		return Type{}, inspecterr.Malformed(token.Position{}, "function expression %d missing body", n.ID())
	}
	returnType, err := e.eval(body)
	if err != nil {
		return Type{}, err
	}

	var params []ParameterType
	if paramList, ok := e.source.ChildXorNode(n.ID(), ast.FunctionExpressionParametersIndex); ok {
		for _, paramID := range e.source.ChildIDs(paramList.ID()) {
			nameNode, ok := e.source.ChildXorNode(paramID, ast.ParameterNameIndex)
			if !ok {
				continue
			}
			na, isAst := nameNode.Ast()
			if !isAst {
				continue
			}
			p := ParameterType{Name: na.IdentifierLiteral, Kind: Unknown}
			if typeNode, ok := e.source.ChildXorNode(paramID, ast.ParameterTypeIndex); ok {
				if declared, err := e.eval(typeNode); err == nil {
					p.Kind = declared.Kind
					p.IsNullable = declared.IsNullable
				}
			}
			params = append(params, p)
		}
	}

	return Type{
		Kind:     Function,
		Extended: DefinedFunctionExtension,
		Function: &FunctionType{Parameters: params, ReturnType: returnType},
	}, nil
}

func (e *evaluator) evalList(n ast.XorNode) (Type, error) {
	var elements []Type
	for _, childID := range e.source.ChildIDs(n.ID()) {
		child, ok := e.source.XorNode(childID)
		if !ok {
			continue
		}
		if idx, has := child.AttributeIndex(); !has || idx != ast.ListExpressionItemIndex {
			continue
		}
		t, err := e.eval(child)
		if err != nil {
			return Type{}, err
		}
		elements = append(elements, t)
	}
	return Type{
		Kind:     List,
		Extended: DefinedListExtension,
		List:     &ListInfo{Elements: elements},
	}, nil
}

func (e *evaluator) evalRecord(n ast.XorNode) (Type, error) {
	fields, err := e.pairedFields(n, ast.RecordExpressionContentIndex,
		ast.GeneralizedIdentifierPairedExpressionNameIndex, ast.GeneralizedIdentifierPairedExpressionValueIndex)
	if err != nil {
		return Type{}, err
	}
	return Type{
		Kind:     Record,
		Extended: DefinedRecordExtension,
		Record:   &RecordInfo{Fields: fields, IsOpen: false},
	}, nil
}

func (e *evaluator) pairedFields(n ast.XorNode, containerIndex, nameIndex, valueIndex uint32) (map[string]Type, error) {
	container, ok := e.source.ChildXorNode(n.ID(), containerIndex)
	if !ok {
		return map[string]Type{}, nil
	}
	fields := make(map[string]Type)
	for _, pairID := range e.source.ChildIDs(container.ID()) {
		nameNode, ok := e.source.ChildXorNode(pairID, nameIndex)
		if !ok {
			continue
		}
		na, isAst := nameNode.Ast()
		if !isAst || na.IdentifierLiteral == "" {
			continue
		}
		valueNode, ok := e.source.ChildXorNode(pairID, valueIndex)
		if !ok {
			fields[na.IdentifierLiteral] = UnknownType
			continue
		}
		t, err := e.eval(valueNode)
		if err != nil {
			return nil, err
		}
		fields[na.IdentifierLiteral] = t
	}
	return fields, nil
}

func (e *evaluator) evalFieldSelector(n ast.XorNode) (Type, error) {
	source, ok := e.source.ChildXorNode(n.ID(), ast.InvokeExpressionCalleeIndex)
	if !ok {
		return UnknownType, nil
	}
	sourceType, err := e.eval(source)
	if err != nil {
		return Type{}, err
	}
	keyNode, ok := e.source.ChildXorNode(n.ID(), ast.FieldSelectorKeyIndex)
	if !ok {
		return UnknownType, nil
	}
	ka, isAst := keyNode.Ast()
	if !isAst {
		return UnknownType, nil
	}
	_, optional := e.source.ChildXorNode(n.ID(), ast.FieldSelectorOptionalMarkerIndex)
	return Select(sourceType, ka.IdentifierLiteral, optional), nil
}

func (e *evaluator) evalFieldProjection(n ast.XorNode) (Type, error) {
	source, ok := e.source.ChildXorNode(n.ID(), ast.InvokeExpressionCalleeIndex)
	if !ok {
		return UnknownType, nil
	}
	sourceType, err := e.eval(source)
	if err != nil {
		return Type{}, err
	}
	keysNode, ok := e.source.ChildXorNode(n.ID(), ast.FieldProjectionKeysIndex)
	if !ok {
		return UnknownType, nil
	}
	var keys []string
	for _, keyID := range e.source.ChildIDs(keysNode.ID()) {
		keyNode, ok := e.source.XorNode(keyID)
		if !ok {
			continue
		}
		if ka, isAst := keyNode.Ast(); isAst {
			keys = append(keys, ka.IdentifierLiteral)
		}
	}
	return Project(sourceType, keys), nil
}

func (e *evaluator) evalErrorHandling(n ast.XorNode) (Type, error) {
	body, ok := e.source.ChildXorNode(n.ID(), ast.ErrorHandlingExpressionBodyIndex)
	if !ok {
		return Type{}, inspecterr.Malformed(token.Position{}, "error-handling expression %d missing body", n.ID())
	}
	bodyType, err := e.eval(body)
	if err != nil {
		return Type{}, err
	}
	otherwise, hasOtherwise := e.source.ChildXorNode(n.ID(), ast.ErrorHandlingExpressionOtherwiseIndex)
	if !hasOtherwise {
		return AnyUnion(bodyType, Primitive(Record, false)), nil
	}
	otherwiseType, err := e.eval(otherwise)
	if err != nil {
		return Type{}, err
	}
	return AnyUnion(bodyType, otherwiseType), nil
}

func (e *evaluator) evalUnary(n ast.XorNode) (Type, error) {
	opNode, ok := e.source.ChildXorNode(n.ID(), ast.UnaryExpressionOperatorIndex)
	if !ok {
		return Type{}, inspecterr.Malformed(token.Position{}, "unary expression %d missing operator", n.ID())
	}
	operand, ok := e.source.ChildXorNode(n.ID(), ast.UnaryExpressionOperandIndex)
	if !ok {
		return Type{}, inspecterr.Malformed(token.Position{}, "unary expression %d missing operand", n.ID())
	}
	operandType, err := e.eval(operand)
	if err != nil {
		return Type{}, err
	}
	opLit := ""
	if oa, isAst := opNode.Ast(); isAst {
		opLit = oa.OperatorLiteral
	}
	switch opLit {
	case "not":
		if operandType.Kind == Logical {
			return Primitive(Logical, operandType.IsNullable), nil
		}
	case "+", "-":
		if operandType.Kind == Number {
			return Primitive(Number, operandType.IsNullable), nil
		}
	}
	return Primitive(None, false), nil
}

func (e *evaluator) evalInvoke(n ast.XorNode) (Type, error) {
	callee, ok := e.source.ChildXorNode(n.ID(), ast.InvokeExpressionCalleeIndex)
	if !ok {
		return UnknownType, nil
	}
	calleeType, err := e.eval(callee)
	if err != nil {
		return Type{}, err
	}
	if calleeType.Extended == DefinedFunctionExtension && calleeType.Function != nil {
		return calleeType.Function.ReturnType, nil
	}
	if calleeType.Kind == Any || calleeType.Kind == Function {
		return Primitive(Any, true), nil
	}
	return Primitive(None, false), nil
}
