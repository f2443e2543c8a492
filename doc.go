/* Package main: quadpas -- a one pass compiler and quad interpreter for a
small Pascal-like teaching language

A program is compiled in a single pass: the scanner hands one token at a time
to a recursive descent parser, which emits three address instructions (quads)
as a side effect of recognizing each grammar rule. There is no syntax tree.
Every identifier, literal, and compiler temporary lives in a symbol table, and
that same table is the data memory of the interpreter that runs the quads.

Section 1: the language

	unit sum;
	var i, total: integer;
	begin
	  total := 0;
	  for i := 1 to 5 do
	    total := total + i;
	  writeln(total)
	end.

Statements are assignment, BEGIN/END blocks, IF/THEN/ELSE, WHILE/DO,
REPEAT/UNTIL, FOR/TO and FOR/DOWNTO, WRITELN and READLN. Expressions have the
usual precedence of multiplying over adding operators, a leading sign, and
parentheses. Variables are INTEGER, FLOAT, or STRING; an undeclared variable is
a warning, and is treated as an integer. Comments are either {braced} or
(*starred*), and text literals are 'quoted'.

Section 2: quads

Each quad is an opcode and three integer fields. Arithmetic quads and MOV name
symbols in every field; PRINT and READ use only the third. Jumps test the sign
of the symbol in the first field and transfer to the quad number in the third;
JINDR transfers to the quad number held in a symbol.

	STOP DIV MUL SUB ADD MOV PRINT READ
	JMP JZ JP JN JNZ JNP JNN JINDR

A relation like `a < b` compiles to a subtraction into a temporary followed by
a jump taken when the relation is false; its target is patched in once the
code it skips has been generated.

	SUB  a, b, @T1
	JNN  @T1, 0, <after>

Arithmetic on two integers stays integer, anything else is done in real
arithmetic; results convert to the kind of their destination. Dividing an
integer by zero, overflowing an integer, or producing an infinite or undefined
real, is a fault.

Section 3: tools

Beyond compiling and running one program, the command can -check many files
concurrently, -dump the symbol, quad, and reserved word tables of a compiled
program, -trace parsing and execution, and run the hand assembled -demo
programs that exercise the interpreter alone.
*/
package main
